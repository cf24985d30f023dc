package storage

import (
	"errors"
	"testing"
)

func TestMemoryStorageLifecycle(t *testing.T) {
	m := NewMemoryStorage()

	if _, err := m.LoadToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadToken() on empty storage = %v, want ErrNotFound", err)
	}

	if err := m.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	token, err := m.LoadToken()
	if err != nil || token != "tok" {
		t.Errorf("LoadToken() = %q, %v", token, err)
	}

	had, err := m.DeleteToken()
	if err != nil || !had {
		t.Errorf("DeleteToken() = %v, %v; want true, nil", had, err)
	}
	had, err = m.DeleteToken()
	if err != nil || had {
		t.Errorf("second DeleteToken() = %v, %v; want false, nil", had, err)
	}
}

func TestKeyringStorageDefaults(t *testing.T) {
	k := NewKeyringStorage("", "")
	if k.service != DefaultKeyringService {
		t.Errorf("service = %q, want %q", k.service, DefaultKeyringService)
	}
	if k.user != DefaultKeyringUser {
		t.Errorf("user = %q, want %q", k.user, DefaultKeyringUser)
	}
}
