package monarch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/mmoney-cli/mmoney/pkg/clierr"
)

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	TrustedDevice bool   `json:"trusted_device"`
	SupportsMFA   bool   `json:"supports_mfa"`
	TOTP          string `json:"totp,omitempty"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates with email and password. When mfaSecret is supplied a
// TOTP code is generated from it and submitted with the login, which keeps
// the flow fully non-interactive. On success the session token is attached
// to the client.
func (c *Client) Login(ctx context.Context, email, password, mfaSecret string) error {
	req := loginRequest{
		Username:      email,
		Password:      password,
		TrustedDevice: true,
		SupportsMFA:   true,
	}
	if mfaSecret != "" {
		code, err := totp.GenerateCode(mfaSecret, time.Now())
		if err != nil {
			return clierr.Auth(clierr.CodeAuthMFAFailed, "failed to generate TOTP code from MFA secret").WithDetails(err.Error())
		}
		req.TOTP = code
	}
	return c.postLogin(ctx, req)
}

// MultiFactorAuthenticate completes a login with a one-shot numeric MFA
// code from an authenticator app.
func (c *Client) MultiFactorAuthenticate(ctx context.Context, email, password, code string) error {
	return c.postLogin(ctx, loginRequest{
		Username:      email,
		Password:      password,
		TrustedDevice: true,
		SupportsMFA:   true,
		TOTP:          code,
	})
}

func (c *Client) postLogin(ctx context.Context, login loginRequest) error {
	body, err := json.Marshal(login)
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return clierr.Upstream(clierr.CodeAPIError, "failed to read login response").WithDetails(err.Error())
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		// fall through to token extraction
	case resp.StatusCode == http.StatusForbidden:
		detail := upstreamDetail(data)
		if detail == "" {
			detail = "Provide --mfa-code, --mfa-secret, or --device-uuid."
		}
		return clierr.Auth(clierr.CodeAuthMFARequired, "multi-factor authentication required").WithDetails(detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		return clierr.Upstream(clierr.CodeAPIRateLimit, "login rate limited").WithDetails(upstreamDetail(data))
	case resp.StatusCode >= 400 && resp.StatusCode <= 499:
		e := clierr.Auth(clierr.CodeAuthFailed, "login failed")
		if detail := upstreamDetail(data); detail != "" {
			return e.WithDetails(detail)
		}
		return e
	default:
		return clierr.Upstream(clierr.CodeAPIError, fmt.Sprintf("login failed with status %d", resp.StatusCode)).WithDetails(upstreamDetail(data))
	}

	var parsed loginResponse
	if err := json.Unmarshal(data, &parsed); err != nil || parsed.Token == "" {
		return clierr.Auth(clierr.CodeAuthFailed, "login succeeded but the response held no token")
	}
	c.SetToken(parsed.Token)
	return nil
}
