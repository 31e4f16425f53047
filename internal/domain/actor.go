package domain

// Role is a closed set of actor roles. Role-specific behavior dispatches
// on this tag, never on free-form strings from the request.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Actor identifies who performs an operation
type Actor struct {
	ID   int64
	Role Role
}

// ValidRole reports whether r is a known role
func ValidRole(r Role) bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	default:
		return false
	}
}
