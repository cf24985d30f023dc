// Package storage provides the credential storage backends: the OS keyring
// (preferred) and the client session file (fallback), behind one interface.
//
// Backends store a single opaque bearer token. Every operation is
// best-effort from the caller's perspective; the resolver in package auth
// turns backend errors into "absent" rather than surfacing them.
package storage

import "errors"

// ErrNotFound is returned by LoadToken when no credential is stored.
var ErrNotFound = errors.New("credential not found")

// TokenStorage stores a single opaque bearer token.
type TokenStorage interface {
	// SaveToken stores the token, replacing any previous one.
	SaveToken(token string) error
	// LoadToken retrieves the stored token, or ErrNotFound when absent.
	LoadToken() (string, error)
	// DeleteToken removes the stored token. It reports whether anything
	// was actually deleted; an already-empty backend is not an error.
	DeleteToken() (bool, error)
}
