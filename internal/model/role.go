package model

// Role is the access level yielded by the shared-password login.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// CanEdit reports whether the role may submit draws or replace the rate
// and member tables.
func (r Role) CanEdit() bool { return r == RoleAdmin }
