package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmoney-cli/mmoney/internal/config"
	"github.com/mmoney-cli/mmoney/pkg/auth"
	"github.com/mmoney-cli/mmoney/pkg/auth/storage"
	"github.com/mmoney-cli/mmoney/pkg/clierr"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

// testApp builds an App against baseURL with in-memory credential backends
// and no interactive collaborators.
func testApp(t *testing.T, baseURL string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Format:      "text",
		Dir:         dir,
		SessionPath: filepath.Join(dir, config.SessionFileName),
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := &App{
		cfg:      cfg,
		stdout:   stdout,
		stderr:   stderr,
		resolver: auth.NewResolver(storage.NewMemoryStorage(), storage.NewMemoryStorage()),
		browser:  &auth.MockBrowserOpener{},
		confirm:  func(string) (bool, error) { return true, nil },
		prompt:   func(string, bool) (string, error) { return "", nil },
		format:   cfg.Format,
	}
	return app, stdout, stderr
}

func run(app *App, args ...string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	return root.Execute()
}

func TestMutationsBlockedBeforeAnyRequest(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	mutations := [][]string{
		{"accounts", "create", "--name", "x", "--type", "depository", "--subtype", "checking"},
		{"accounts", "update", "acct-1", "--name", "y"},
		{"accounts", "delete", "acct-1", "--yes"},
		{"transactions", "create", "--date", "2024-01-02", "--account-id", "a", "--amount", "-5", "--merchant", "m", "--category-id", "c"},
		{"transactions", "update", "txn-1", "--notes", "n"},
		{"transactions", "delete", "txn-1", "--yes"},
		{"categories", "create", "--group-id", "g", "--name", "n"},
		{"categories", "delete", "cat-1", "--yes"},
		{"tags", "create", "--name", "n"},
		{"tags", "set", "txn-1", "--tag-id", "tag-1"},
		{"budgets", "set", "--amount", "100", "--category-id", "c"},
	}
	for _, args := range mutations {
		app, _, _ := testApp(t, server.URL)
		err := run(app, args...)
		require.Error(t, err, "args %v", args)

		ce := clierr.From(err)
		assert.Equal(t, clierr.CodeMutationBlocked, ce.Code, "args %v", args)
		assert.Equal(t, clierr.ExitMutationBlocked, ce.Exit, "args %v", args)
	}
	assert.Equal(t, int64(0), requests.Load(), "blocked mutations must not reach the service")
}

func TestMutationAllowedInvokesOperationOnce(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"data":{"createTransactionTag":{"tag":{"id":"t1","name":"n"}}}}`))
	}))
	defer server.Close()

	app, _, _ := testApp(t, server.URL)
	err := run(app, "--allow-mutations", "tags", "create", "--name", "n")
	require.NoError(t, err)
	assert.Equal(t, int64(1), requests.Load())
}

func TestValidationRunsBeforeNetwork(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"bad start date", []string{"transactions", "list", "--start-date", "01-02-2024"}, clierr.CodeValidationInvalidDate},
		{"bad end date", []string{"budgets", "list", "--end-date", "2024-13-99"}, clierr.CodeValidationInvalidDate},
		{"missing account fields", []string{"--allow-mutations", "accounts", "create", "--name", "x"}, clierr.CodeValidationMissingField},
		{"missing budget target", []string{"--allow-mutations", "budgets", "set", "--amount", "10"}, clierr.CodeValidationMissingField},
		{"missing tag ids", []string{"--allow-mutations", "tags", "set", "txn-1"}, clierr.CodeValidationMissingField},
		{"unknown format", []string{"--format", "xml", "accounts", "list"}, clierr.CodeValidationInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := testApp(t, server.URL)
			err := run(app, tt.args...)
			require.Error(t, err)

			ce := clierr.From(err)
			assert.Equal(t, tt.code, ce.Code)
			assert.Equal(t, clierr.ExitValidationError, ce.Exit)
		})
	}
	assert.Equal(t, int64(0), requests.Load())
}

func TestListRendersCSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"accounts":[
			{"id":"1","displayName":"Checking","currentBalance":100.5},
			{"id":"2","displayName":"Savings","currentBalance":null}
		]}}`))
	}))
	defer server.Close()

	app, stdout, _ := testApp(t, server.URL)
	require.NoError(t, run(app, "--format", "csv", "accounts", "list"))

	assert.Equal(t,
		"currentBalance,displayName,id\n100.5,Checking,1\n,Savings,2\n",
		stdout.String())
}

func TestListRendersTextByDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"accounts":[{"id":"1"},{"id":"2"}]}}`))
	}))
	defer server.Close()

	app, stdout, _ := testApp(t, server.URL)
	require.NoError(t, run(app, "accounts", "list"))

	assert.Equal(t, "id=1\n---\nid=2\n", stdout.String())
}

func TestDeleteDeclinedAborts(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	app, _, _ := testApp(t, server.URL)
	app.confirm = func(string) (bool, error) { return false, nil }

	err := run(app, "--allow-mutations", "accounts", "delete", "acct-1")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitGeneralError, clierr.ExitStatus(err))
	assert.Equal(t, int64(0), requests.Load())
}

func TestAuthStatus(t *testing.T) {
	app, stdout, _ := testApp(t, "http://unused.invalid")
	require.NoError(t, run(app, "auth", "status"))
	assert.Contains(t, stdout.String(), "Not authenticated")

	app2, stdout2, _ := testApp(t, "http://unused.invalid")
	_, ok := app2.resolver.Persist("tok-123")
	require.True(t, ok)
	require.NoError(t, run(app2, "auth", "status"))
	assert.Contains(t, stdout2.String(), "Authenticated")
}

func TestAuthLogout(t *testing.T) {
	app, stdout, _ := testApp(t, "http://unused.invalid")
	app.resolver.Persist("tok-123")

	require.NoError(t, run(app, "auth", "logout"))
	assert.Contains(t, stdout.String(), "Session deleted.")

	stdout.Reset()
	require.NoError(t, run(app, "auth", "logout"))
	assert.Contains(t, stdout.String(), "No session found.")
}

func TestAuthLoginWithToken(t *testing.T) {
	app, stdout, _ := testApp(t, "http://unused.invalid")
	require.NoError(t, run(app, "auth", "login", "--token", "tok-abc"))
	assert.Contains(t, stdout.String(), "Token saved")

	token, source, ok := app.resolver.Resolve(nil)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, auth.SourceKeyring, source)
}

func TestAuthLoginNonInteractiveRequiresCredentials(t *testing.T) {
	app, _, _ := testApp(t, "http://unused.invalid")
	err := run(app, "auth", "login", "--interactive=false")
	require.Error(t, err)

	ce := clierr.From(err)
	assert.Equal(t, clierr.CodeValidationMissingField, ce.Code)
}

func TestKeyringTokenAttachedToRequests(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"accounts":[]}}`))
	}))
	defer server.Close()

	app, _, _ := testApp(t, server.URL)
	source, ok := app.resolver.Persist("tok-xyz")
	require.True(t, ok)
	require.Equal(t, auth.SourceKeyring, source)

	require.NoError(t, run(app, "accounts", "list"))
	assert.Equal(t, "Token tok-xyz", got)
}

func TestSessionTokenAttachedToRequests(t *testing.T) {
	var authz, device string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		device = r.Header.Get("Device-UUID")
		w.Write([]byte(`{"data":{"accounts":[]}}`))
	}))
	defer server.Close()

	app, _, _ := testApp(t, server.URL)
	session := &monarch.SessionStore{Path: app.cfg.SessionPath}
	app.session = session
	// Empty keyring tier forces resolution down to the session file.
	app.resolver = auth.NewResolver(storage.NewMemoryStorage(), session)

	sess := &monarch.Session{Token: "tok-session", DeviceUUID: "dev-42"}
	require.NoError(t, sess.Save(app.cfg.SessionPath))

	require.NoError(t, run(app, "accounts", "list"))
	assert.Equal(t, "Token tok-session", authz)
	assert.Equal(t, "dev-42", device)
}

func TestUpstreamErrorsMapToExitStatuses(t *testing.T) {
	tests := []struct {
		status int
		code   string
		exit   int
	}{
		{http.StatusUnauthorized, clierr.CodeAuthRequired, clierr.ExitAuthError},
		{http.StatusNotFound, clierr.CodeNotFound, clierr.ExitNotFound},
		{http.StatusTooManyRequests, clierr.CodeAPIRateLimit, clierr.ExitAPIError},
		{http.StatusBadGateway, clierr.CodeAPIError, clierr.ExitAPIError},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		app, _, _ := testApp(t, server.URL)

		err := run(app, "accounts", "list")
		server.Close()
		require.Error(t, err, "status %d", tt.status)

		ce := clierr.From(err)
		assert.Equal(t, tt.code, ce.Code, "status %d", tt.status)
		assert.Equal(t, tt.exit, ce.Exit, "status %d", tt.status)
	}
}
