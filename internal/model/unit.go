package model

// Unit is a physical site belonging to a company. The company reference is
// a weak one: its presence is validated, but no foreign-key constraint
// enforces that the company row still exists.
//
// Fields:
//
//	ID      - primary key identifier, auto-incremented.
//	Name    - unit name.
//	Company - id of the owning company.
type Unit struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company int64  `json:"company"`
}

var unitSchema = []Rule{
	{Field: "name", Required: true},
	{Field: "company", Required: true},
}

// Validate checks the unit against its declared schema.
func (u *Unit) Validate() error {
	return validate(map[string]any{
		"name":    u.Name,
		"company": u.Company,
	}, unitSchema)
}

// ValidateUnitChanges validates a partial update payload.
func ValidateUnitChanges(changes map[string]any) error {
	return validatePartial(changes, unitSchema)
}
