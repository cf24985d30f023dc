package storage

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Default keyring coordinates for the stored credential.
const (
	DefaultKeyringService = "mmoney-cli"
	DefaultKeyringUser    = "monarch-token"
)

// KeyringStorage stores the token in the OS credential store.
type KeyringStorage struct {
	service string
	user    string
}

// NewKeyringStorage creates a keyring-backed storage. Empty arguments fall
// back to the defaults.
func NewKeyringStorage(service, user string) *KeyringStorage {
	if service == "" {
		service = DefaultKeyringService
	}
	if user == "" {
		user = DefaultKeyringUser
	}
	return &KeyringStorage{service: service, user: user}
}

// SaveToken stores the token in the OS keyring.
func (k *KeyringStorage) SaveToken(token string) error {
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	if err := keyring.Set(k.service, k.user, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// LoadToken retrieves the token from the OS keyring.
func (k *KeyringStorage) LoadToken() (string, error) {
	token, err := keyring.Get(k.service, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to retrieve token from keyring: %w", err)
	}
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

// DeleteToken removes the token from the OS keyring.
func (k *KeyringStorage) DeleteToken() (bool, error) {
	if err := keyring.Delete(k.service, k.user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return true, nil
}
