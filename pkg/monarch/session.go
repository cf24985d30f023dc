package monarch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session is the state persisted to the session file. Only this package
// reads or writes the file; the rest of the CLI treats it as an opaque
// artifact whose presence can be checked with SessionExists.
type Session struct {
	Token      string    `json:"token"`
	DeviceUUID string    `json:"device_uuid,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// Save writes the session to path with owner-only permissions, creating the
// parent directory when missing.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession reads a session from path.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if s.Token == "" {
		return nil, fmt.Errorf("session file holds no token")
	}
	return &s, nil
}

// RemoveSession deletes the session file. It reports whether a file was
// actually removed; a missing file is not an error.
func RemoveSession(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete session file: %w", err)
	}
	return true, nil
}

// SessionExists reports whether a session file is present, without
// deserializing it.
func SessionExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SaveSession persists the client's current session to path.
func (c *Client) SaveSession(path string) error {
	s := &Session{
		Token:      c.token,
		DeviceUUID: c.DeviceUUID(),
		CreatedAt:  time.Now().UTC(),
	}
	return s.Save(path)
}

// SessionStore adapts the session file to the credential-storage contract
// used by the resolver's fallback tier. It keeps the session from the last
// successful LoadToken so callers can pick up the device UUID without a
// second file read; a command invocation reads the file at most once.
type SessionStore struct {
	Path string

	loaded *Session
}

// SaveToken writes a session file holding only the token.
func (s *SessionStore) SaveToken(token string) error {
	sess := &Session{Token: token, CreatedAt: time.Now().UTC()}
	return sess.Save(s.Path)
}

// LoadToken reads the token out of the session file. Absence is checked
// with a stat first; the file is only deserialized when present.
func (s *SessionStore) LoadToken() (string, error) {
	if !SessionExists(s.Path) {
		return "", fmt.Errorf("no session file at %s", s.Path)
	}
	sess, err := LoadSession(s.Path)
	if err != nil {
		return "", err
	}
	s.loaded = sess
	return sess.Token, nil
}

// DeviceUUID returns the device UUID from the most recently loaded
// session, or empty when none was loaded or none was stored.
func (s *SessionStore) DeviceUUID() string {
	if s.loaded == nil {
		return ""
	}
	return s.loaded.DeviceUUID
}

// DeleteToken removes the session file.
func (s *SessionStore) DeleteToken() (bool, error) {
	return RemoveSession(s.Path)
}
