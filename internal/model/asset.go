package model

// Asset status values.
const (
	StatusInOperation = "inOperation"
	StatusInDowntime  = "inDowntime"
	StatusInAlert     = "inAlert"
)

// Statuses lists every valid asset status.
var Statuses = []string{StatusInOperation, StatusInDowntime, StatusInAlert}

// Asset is a monitored piece of equipment. Every asset belongs to exactly
// one user, one unit and one company.
//
// The public image representation is a data-URI style string
// "<type>,<base64 payload>". It is stored decomposed as ImageType plus
// ImageData; the composed string only exists at the serialization boundary.
//
// Fields:
//
//	ID           - primary key identifier, auto-incremented.
//	Name         - asset name.
//	Healthscore  - health in [0,100]. Pointer so that an absent value can be
//	               told apart from a legitimate zero.
//	Status       - one of inOperation, inDowntime, inAlert.
//	SerialNumber - optional serial number, unique when present.
//	Image        - composed image string, empty when no image is stored.
//	ImageType    - stored MIME prefix (e.g. "data:image/png;base64").
//	ImageData    - stored raw image bytes.
//	Description  - optional free-form description.
//	User         - id of the responsible user.
//	Unit         - id of the owning unit.
//	Company      - id of the owning company.
type Asset struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Healthscore  *float64 `json:"healthscore"`
	Status       string   `json:"status"`
	SerialNumber string   `json:"serialnumber,omitempty"`
	Image        string   `json:"image"`
	ImageType    string   `json:"-"`
	ImageData    []byte   `json:"-"`
	Description  string   `json:"description,omitempty"`
	User         int64    `json:"user"`
	Unit         int64    `json:"unit"`
	Company      int64    `json:"company"`
}

var assetSchema = []Rule{
	{Field: "name", Required: true},
	{Field: "healthscore", Required: true, Min: numPtr(0), Max: numPtr(100)},
	{Field: "status", Required: true, Enum: Statuses},
	{Field: "user", Required: true},
	{Field: "unit", Required: true},
	{Field: "company", Required: true},
}

// Validate checks the asset against its declared schema.
func (a *Asset) Validate() error {
	return validate(map[string]any{
		"name":        a.Name,
		"healthscore": a.Healthscore,
		"status":      a.Status,
		"user":        a.User,
		"unit":        a.Unit,
		"company":     a.Company,
	}, assetSchema)
}

// ValidateAssetChanges validates a partial update payload.
func ValidateAssetChanges(changes map[string]any) error {
	return validatePartial(changes, assetSchema)
}
