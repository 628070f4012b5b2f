package model

// User roles. Admins operate without a company; managers and employees are
// expected to belong to one. An employee only ever sees their own assets.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Roles lists every valid user role.
var Roles = []string{RoleAdmin, RoleManager, RoleEmployee}

// User is an application account. The password is stored only as a bcrypt
// hash and is write-only: no serialization path ever includes it.
//
// Fields:
//
//	ID           - primary key identifier, auto-incremented.
//	Name         - display name.
//	Email        - unique e-mail address.
//	Role         - one of admin, manager, employee.
//	Username     - unique login name.
//	PasswordHash - bcrypt hash, excluded from JSON.
//	Company      - id of the owning company, nil for company-less admins.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Company      *int64 `json:"company,omitempty"`
}

var userSchema = []Rule{
	{Field: "email", Required: true},
	{Field: "role", Required: true, Enum: Roles},
	{Field: "username", Required: true},
	{Field: "password", Required: true},
}

// Validate checks the user against its declared schema. The password rule
// runs against the already-hashed value, so it only enforces presence.
func (u *User) Validate() error {
	return validate(map[string]any{
		"email":    u.Email,
		"role":     u.Role,
		"username": u.Username,
		"password": u.PasswordHash,
	}, userSchema)
}

// ValidateUserChanges validates a partial update payload.
func ValidateUserChanges(changes map[string]any) error {
	return validatePartial(changes, userSchema)
}
