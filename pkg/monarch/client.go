// Package monarch is a minimal client for the Monarch Money GraphQL API.
//
// The client covers exactly the operations the CLI exposes. It owns the
// session lifecycle (token, device UUID, session file) and the outbound
// authentication headers; everything above it consumes responses as opaque
// ordered JSON values.
package monarch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmoney-cli/mmoney/pkg/clierr"
	"github.com/mmoney-cli/mmoney/pkg/ordered"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.monarchmoney.com"

const (
	graphqlPath = "/graphql"
	loginPath   = "/auth/login/"

	authorizationHeader = "Authorization"
	deviceUUIDHeader    = "Device-UUID"
)

// Client talks to the Monarch Money API. It is not safe for concurrent use;
// the CLI performs exactly one logical service call per invocation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client with no credentials attached.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers: map[string]string{
			"Client-Platform": "web",
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Headers exposes the outbound header map. The credential resolver writes
// the Authorization entry directly into this map.
func (c *Client) Headers() map[string]string {
	return c.headers
}

// SetToken attaches a bearer token to the client and to outbound requests.
func (c *Client) SetToken(token string) {
	c.token = token
	c.headers[authorizationHeader] = "Token " + token
}

// Token returns the current bearer token, if any.
func (c *Client) Token() string {
	return c.token
}

// SetDeviceUUID attaches a trusted-device identifier, which lets login
// bypass an MFA challenge.
func (c *Client) SetDeviceUUID(uuid string) {
	c.headers[deviceUUIDHeader] = uuid
}

// DeviceUUID returns the attached device identifier, if any.
func (c *Client) DeviceUUID() string {
	return c.headers[deviceUUIDHeader]
}

// Authenticated reports whether an Authorization header is attached.
func (c *Client) Authenticated() bool {
	return c.headers[authorizationHeader] != ""
}

type gqlRequest struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
}

// gql executes one GraphQL operation and returns the ordered "data" value.
func (c *Client) gql(ctx context.Context, operation, query string, variables any) (any, error) {
	body, err := json.Marshal(gqlRequest{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+graphqlPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, clierr.Upstream(clierr.CodeAPIError, "failed to read API response").WithDetails(err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode, data)
	}

	value, err := ordered.Decode(data)
	if err != nil {
		return nil, clierr.Upstream(clierr.CodeAPIError, "API returned malformed JSON").WithDetails(err.Error())
	}
	envelope, ok := value.(*ordered.Map)
	if !ok {
		return nil, clierr.Upstream(clierr.CodeAPIError, "API returned an unexpected response shape")
	}
	if errs, ok := envelope.Get("errors"); ok {
		return nil, gqlError(operation, errs)
	}
	result, _ := envelope.Get("data")
	return result, nil
}

func classifyTransportError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return clierr.Upstream(clierr.CodeAPITimeout, "request to the API timed out").WithDetails(err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return clierr.Upstream(clierr.CodeAPITimeout, "request to the API timed out").WithDetails(err.Error())
	}
	return clierr.Upstream(clierr.CodeAPIError, "request to the API failed").WithDetails(err.Error())
}

func classifyStatus(status int, body []byte) error {
	detail := upstreamDetail(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e := clierr.Auth(clierr.CodeAuthRequired, "authentication required")
		if detail != "" {
			return e.WithDetails(detail)
		}
		return e.WithDetails("Run 'mmoney auth login' first.")
	case status == http.StatusNotFound:
		e := clierr.NotFound("resource not found")
		if detail != "" {
			return e.WithDetails(detail)
		}
		return e
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return clierr.Upstream(clierr.CodeAPITimeout, "the API timed out").WithDetails(detail)
	case status == http.StatusTooManyRequests:
		return clierr.Upstream(clierr.CodeAPIRateLimit, "the API rate limited this client").WithDetails(detail)
	default:
		return clierr.Upstream(clierr.CodeAPIError, fmt.Sprintf("API request failed with status %d", status)).WithDetails(detail)
	}
}

// upstreamDetail pulls a human-readable message out of an error body, when
// the service sent one.
func upstreamDetail(body []byte) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	switch {
	case parsed.Detail != "":
		return parsed.Detail
	case parsed.Message != "":
		return parsed.Message
	default:
		return parsed.Error
	}
}

func gqlError(operation string, errs any) error {
	message := fmt.Sprintf("operation %s failed", operation)
	if seq, ok := errs.([]any); ok && len(seq) > 0 {
		if first, ok := seq[0].(*ordered.Map); ok {
			if msg, ok := first.Get("message"); ok {
				if s, ok := msg.(string); ok && s != "" {
					return clierr.Upstream(clierr.CodeAPIError, message).WithDetails(s)
				}
			}
		}
	}
	return clierr.Upstream(clierr.CodeAPIError, message)
}
