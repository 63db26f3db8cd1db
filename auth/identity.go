package auth

import (
	"github.com/upb/eventflow/models"
)

// Identity is the authenticated caller for a single request
type Identity struct {
	SubjectID int
	Role      models.UserRole
}

// HasRole reports whether the identity holds any of the given roles
func (i Identity) HasRole(roles ...models.UserRole) bool {
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity holds the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
