package storage

import "sync"

// MemoryStorage keeps the token in process memory. Used in tests and as a
// sink when the caller wants resolution without persistence.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// SaveToken stores the token in memory.
func (m *MemoryStorage) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// LoadToken retrieves the stored token.
func (m *MemoryStorage) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNotFound
	}
	return m.token, nil
}

// DeleteToken clears the stored token.
func (m *MemoryStorage) DeleteToken() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	had := m.token != ""
	m.token = ""
	return had, nil
}
