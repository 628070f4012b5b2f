package model

// Page is the envelope returned by every list operation. Total counts all
// matches regardless of pagination; Content holds a single page of records
// ordered by id ascending so that repeated calls paginate deterministically.
type Page struct {
	Content any   `json:"content"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
}

// ReportRow is one row of the average-health aggregation: the count and
// mean healthscore (rounded to 2 decimals) of the assets sharing a status
// and the values of the requested grouping fields. Grouping fields that
// were not requested stay nil and are omitted from JSON.
type ReportRow struct {
	Status        string  `json:"status"`
	Unit          *int64  `json:"unit,omitempty"`
	Company       *int64  `json:"company,omitempty"`
	User          *int64  `json:"user,omitempty"`
	Total         int64   `json:"total"`
	AverageHealth float64 `json:"averageHealth"`
}
