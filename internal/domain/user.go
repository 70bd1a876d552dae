package domain

// UserRole represents the role displayed for a user
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleOperator UserRole = "OPERATOR"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleOperator
}

// User represents an operator of the console
type User struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Role    UserRole `json:"role"`
	Avatar  string   `json:"avatar"`
	Enabled bool     `json:"enabled"`
}

// SystemUser is the actor recorded for audit entries written while nobody is logged in.
var SystemUser = User{
	ID:      "_system",
	Name:    "System",
	Role:    UserRoleAdmin,
	Enabled: true,
}
