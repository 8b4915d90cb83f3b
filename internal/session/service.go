// internal/session/service.go
package session

import "context"

// Service defines the interface for the session store. The session is
// either anonymous or bound to exactly one user; login and register
// bind it, logout clears it, and the bound identity survives restarts
// through durable storage.
type Service interface {
	Login(ctx context.Context, email, credential string) (*User, error)
	Register(ctx context.Context, email, credential, name string) (*User, error)
	Logout(ctx context.Context) error

	Current() (*User, bool)
	IsAuthenticated() bool
	IsAdmin() bool
}
