// internal/session/domain.go
package session

import (
	"storefront/internal/catalog"
)

// User is the authenticated identity bound to the session. It is the
// catalog user with the credential stripped; this exact shape is what
// gets persisted under the "user" key.
type User struct {
	ID    int          `json:"id"`
	Email string       `json:"email"`
	Name  string       `json:"name"`
	Role  catalog.Role `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == catalog.RoleAdmin
}
