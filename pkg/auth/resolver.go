// Package auth resolves, persists, and clears the credential used to
// authenticate service calls.
//
// Two ordered backends hold at most one credential from the CLI's
// perspective: the OS keyring, then the client session file. Resolution is
// best-effort throughout; a failing backend reads as absent and never
// aborts command execution.
package auth

import (
	"github.com/mmoney-cli/mmoney/pkg/auth/storage"
)

// Source identifies which backend a credential came from or went to.
type Source string

const (
	SourceKeyring Source = "keyring"
	SourceSession Source = "session"
	SourceNone    Source = "none"
)

// Header shape expected by the service transport. A keyring-origin
// credential must be indistinguishable on the wire from one the client
// loaded out of its own session file.
const (
	AuthorizationHeader = "Authorization"
	TokenScheme         = "Token"
)

// Resolver is the ordered fallback chain over the two credential backends.
type Resolver struct {
	secure   storage.TokenStorage
	fallback storage.TokenStorage
}

// NewResolver creates a resolver that prefers secure and falls back to
// fallback. Either may be nil, in which case that tier is skipped.
func NewResolver(secure, fallback storage.TokenStorage) *Resolver {
	return &Resolver{secure: secure, fallback: fallback}
}

// Resolve returns the stored credential, preferring the secure store. A
// secure-store hit short-circuits: the fallback backend is never read, and
// the credential is attached to headers as "Authorization: Token <tok>" so
// it actually reaches outbound requests instead of only being recorded.
// Backend failures of any kind degrade to absent; Resolve never fails.
func (r *Resolver) Resolve(headers map[string]string) (string, Source, bool) {
	if r.secure != nil {
		if token, err := r.secure.LoadToken(); err == nil && token != "" {
			if headers != nil {
				headers[AuthorizationHeader] = TokenScheme + " " + token
			}
			return token, SourceKeyring, true
		}
	}
	if r.fallback != nil {
		if token, err := r.fallback.LoadToken(); err == nil && token != "" {
			return token, SourceSession, true
		}
	}
	return "", SourceNone, false
}

// Persist writes the credential to the secure store, falling back to the
// session backend on any secure-store failure. It reports which backend
// took the write; ok is false only when both attempts failed. Persist
// never fails.
func (r *Resolver) Persist(token string) (Source, bool) {
	if r.secure != nil {
		if err := r.secure.SaveToken(token); err == nil {
			return SourceKeyring, true
		}
	}
	if r.fallback != nil {
		if err := r.fallback.SaveToken(token); err == nil {
			return SourceSession, true
		}
	}
	return SourceNone, false
}

// Clear removes the credential from both backends unconditionally. It
// returns true if at least one backend actually deleted something, false
// when both were already empty. Backend errors are swallowed.
func (r *Resolver) Clear() bool {
	cleared := false
	if r.secure != nil {
		if had, err := r.secure.DeleteToken(); err == nil && had {
			cleared = true
		}
	}
	if r.fallback != nil {
		if had, err := r.fallback.DeleteToken(); err == nil && had {
			cleared = true
		}
	}
	return cleared
}
