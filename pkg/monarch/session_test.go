package monarch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := &Session{Token: "tok-abc", DeviceUUID: "dev-1"}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if loaded.Token != "tok-abc" || loaded.DeviceUUID != "dev-1" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadSessionErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSession(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadSession on a missing file must fail")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	os.WriteFile(corrupt, []byte("not json"), 0600)
	if _, err := LoadSession(corrupt); err == nil {
		t.Error("LoadSession on a corrupt file must fail")
	}

	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte(`{"token":""}`), 0600)
	if _, err := LoadSession(empty); err == nil {
		t.Error("LoadSession on a tokenless file must fail")
	}
}

func TestSessionExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	if SessionExists(path) {
		t.Error("SessionExists on missing file = true")
	}
	os.WriteFile(path, []byte("opaque"), 0600)
	if !SessionExists(path) {
		t.Error("SessionExists on present file = false")
	}
	if SessionExists(dir) {
		t.Error("SessionExists on a directory = true")
	}
}

func TestRemoveSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	removed, err := RemoveSession(path)
	if err != nil || removed {
		t.Errorf("RemoveSession(missing) = %v, %v; want false, nil", removed, err)
	}

	os.WriteFile(path, []byte("x"), 0600)
	removed, err = RemoveSession(path)
	if err != nil || !removed {
		t.Errorf("RemoveSession(present) = %v, %v; want true, nil", removed, err)
	}
}

func TestClientSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	c := NewClient()
	c.SetToken("tok")
	c.SetDeviceUUID("dev")
	if err := c.SaveSession(path); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if loaded.Token != "tok" || loaded.DeviceUUID != "dev" {
		t.Errorf("LoadSession() = %+v", loaded)
	}
	if got := c.Headers()["Authorization"]; got != "Token tok" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestSessionStore(t *testing.T) {
	store := &SessionStore{Path: filepath.Join(t.TempDir(), "session.json")}

	if _, err := store.LoadToken(); err == nil {
		t.Error("LoadToken on missing session must fail")
	}

	if err := store.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	token, err := store.LoadToken()
	if err != nil || token != "tok" {
		t.Errorf("LoadToken() = %q, %v", token, err)
	}

	had, err := store.DeleteToken()
	if err != nil || !had {
		t.Errorf("DeleteToken() = %v, %v; want true, nil", had, err)
	}
	had, _ = store.DeleteToken()
	if had {
		t.Error("second DeleteToken() = true, want false")
	}
}

func TestSessionStoreCachesLoadedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := &Session{Token: "tok", DeviceUUID: "dev-9"}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store := &SessionStore{Path: path}
	if got := store.DeviceUUID(); got != "" {
		t.Errorf("DeviceUUID() before load = %q, want empty", got)
	}
	if _, err := store.LoadToken(); err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}

	// The device UUID must come from the load above, not a second read.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove session file: %v", err)
	}
	if got := store.DeviceUUID(); got != "dev-9" {
		t.Errorf("DeviceUUID() = %q, want %q", got, "dev-9")
	}
}
