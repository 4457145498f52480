package enum

import "strings"

// UserRole decides how far a profile can see.
type UserRole string

const (
	// RoleOwner sees every shop.
	RoleOwner UserRole = "owner"
	// RoleManager is bound to one shop.
	RoleManager UserRole = "manager"
)

func (r UserRole) Valid() bool {
	return r == RoleOwner || r == RoleManager
}

func (r UserRole) String() string {
	return string(r)
}

// ParseUserRole normalizes r, returning "" for unknown roles.
func ParseUserRole(r string) UserRole {
	role := UserRole(strings.ToLower(strings.TrimSpace(r)))
	if !role.Valid() {
		return ""
	}
	return role
}
