package model

// Company represents a tenant that owns units, users and assets. CNPJ is
// the Brazilian 14-digit tax identifier and must be unique across companies.
//
// Fields:
//
//	ID          - primary key identifier, auto-incremented.
//	Name        - company name.
//	Description - optional free-form description.
//	CNPJ        - unique 14-digit tax identifier.
//	Active      - whether the company is active. Pointer so that an absent
//	              value can be told apart from an explicit false.
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CNPJ        string `json:"cnpj"`
	Active      *bool  `json:"active"`
}

var companySchema = []Rule{
	{Field: "name", Required: true},
	{Field: "cnpj", Required: true},
	{Field: "active", Required: true},
}

// Validate checks the company against its declared schema.
func (c *Company) Validate() error {
	return validate(map[string]any{
		"name":   c.Name,
		"cnpj":   c.CNPJ,
		"active": c.Active,
	}, companySchema)
}

// ValidateCompanyChanges validates a partial update payload.
func ValidateCompanyChanges(changes map[string]any) error {
	return validatePartial(changes, companySchema)
}
