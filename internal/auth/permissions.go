package auth

import "github.com/deouf-dev/talemy-api/internal/models"

// HasRole reports whether role is one of allowed.
func HasRole(role models.UserRole, allowed ...models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role may use the admin endpoints.
func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}
