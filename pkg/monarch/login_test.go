package monarch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmoney-cli/mmoney/pkg/clierr"
)

// Base32 test secret, usable with any TOTP implementation.
const testMFASecret = "JBSWY3DPEHPK3PXP"

func TestLoginSuccess(t *testing.T) {
	var got loginRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"token":"tok-login"}`))
	})

	err := client.Login(context.Background(), "me@example.com", "hunter2", "")
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", got.Username)
	assert.Equal(t, "hunter2", got.Password)
	assert.True(t, got.SupportsMFA)
	assert.Empty(t, got.TOTP)
	assert.Equal(t, "tok-login", client.Token())
	assert.Equal(t, "Token tok-login", client.Headers()["Authorization"])
}

func TestLoginSubmitsTOTPFromSecret(t *testing.T) {
	var got loginRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"token":"t"}`))
	})

	before := time.Now()
	err := client.Login(context.Background(), "me@example.com", "pw", testMFASecret)
	require.NoError(t, err)
	require.Len(t, got.TOTP, 6)

	// The submitted code must verify against the same secret in the same
	// time step.
	ok := totp.Validate(got.TOTP, testMFASecret)
	if !ok {
		// Allow the adjacent step when the test straddles a boundary.
		code, _ := totp.GenerateCode(testMFASecret, before)
		ok = code == got.TOTP
	}
	assert.True(t, ok, "submitted TOTP %q does not match secret", got.TOTP)
}

func TestLoginBadSecret(t *testing.T) {
	client := NewClient()
	err := client.Login(context.Background(), "me@example.com", "pw", "not-base32!")

	var ce *clierr.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, clierr.CodeAuthMFAFailed, ce.Code)
	assert.Equal(t, clierr.ExitAuthError, ce.Exit)
}

func TestMultiFactorAuthenticate(t *testing.T) {
	var got loginRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"token":"tok-mfa"}`))
	})

	err := client.MultiFactorAuthenticate(context.Background(), "me@example.com", "pw", "123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.TOTP)
	assert.Equal(t, "tok-mfa", client.Token())
}

func TestLoginFailureClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantExit int
	}{
		{"bad credentials", 401, `{"detail":"Unable to log in"}`, clierr.CodeAuthFailed, clierr.ExitAuthError},
		{"mfa required", 403, `{"detail":"MFA required"}`, clierr.CodeAuthMFARequired, clierr.ExitAuthError},
		{"rate limited", 429, `{"detail":"throttled"}`, clierr.CodeAPIRateLimit, clierr.ExitAPIError},
		{"server error", 502, `{}`, clierr.CodeAPIError, clierr.ExitAPIError},
		{"empty token", 200, `{"token":""}`, clierr.CodeAuthFailed, clierr.ExitAuthError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.Login(context.Background(), "me@example.com", "pw", "")
			var ce *clierr.Error
			require.True(t, errors.As(err, &ce), "error = %v", err)
			assert.Equal(t, tt.wantCode, ce.Code)
			assert.Equal(t, tt.wantExit, ce.Exit)
		})
	}
}

func TestLoginSendsDeviceUUID(t *testing.T) {
	var gotHeader string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Device-UUID")
		w.Write([]byte(`{"token":"t"}`))
	})
	client.SetDeviceUUID("uuid-9")

	require.NoError(t, client.Login(context.Background(), "me@example.com", "pw", ""))
	assert.Equal(t, "uuid-9", gotHeader)
}
