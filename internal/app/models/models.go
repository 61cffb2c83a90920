package models

// Role defines the user role type
type Role string

const (
	RoleStudent Role = "student"
	RoleHost    Role = "host"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// HomePath returns the home surface for a role.
func (r Role) HomePath() string {
	switch r {
	case RoleHost:
		return "/host"
	case RoleAdmin:
		return "/admin"
	default:
		return "/home"
	}
}
