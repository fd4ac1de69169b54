// Package api implements the HTTP client for the remote payments
// backend. The backend owns all business state; every method here is a
// plain request/response call that decodes the server's answer into
// model types and surfaces backend rejection messages verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/localpay/localpay/internal/common"
)

// GenericErrorMessage is shown when a call fails without a structured
// backend message (network failure, malformed response).
const GenericErrorMessage = "Error de conexión. Intenta nuevamente."

// TokenSource supplies the bearer token for authenticated calls.
// session.Store satisfies it.
type TokenSource interface {
	Token() string
}

// Error is a structured rejection from the backend: a 4xx/5xx response
// carrying a human-readable message that must be displayed verbatim.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// UserVisibleMessage returns the backend's message for inline display.
func (e *Error) UserVisibleMessage() string {
	return e.Message
}

// Client talks to the remote payments API.
type Client struct {
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	baseURL        string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTokenSource sets the bearer-token source for authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook registers a callback invoked whenever the backend
// rejects the stored token. The hook clears the session so the caller
// can route back to login.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusEnvelope is the common wrapper every backend response carries.
type statusEnvelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// do executes one request. Paths are relative to the base URL; query may
// be nil. When authed is true the stored token is attached, and a 401
// clears the session and returns common.ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := ""
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return common.ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return common.NewUserError(GenericErrorMessage, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return common.NewUserError(GenericErrorMessage, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		slog.Debug("token rejected, invalidating session", "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return common.ErrSessionExpired
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		slog.Warn("rate limited", "path", path)
		return common.ErrRateLimit
	}

	var env statusEnvelope
	envOK := json.Unmarshal(data, &env) == nil

	if resp.StatusCode >= 400 {
		if envOK && env.Message != "" {
			apiErr := &Error{Status: resp.StatusCode, Message: env.Message}
			if resp.StatusCode < 500 {
				// A definitive rejection; retrying cannot change it.
				return &common.RetryableError{Err: apiErr, Retryable: false}
			}
			return apiErr
		}
		return common.NewUserError(GenericErrorMessage,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	// Some backends report failures inside a 200 wrapper.
	if envOK && !env.Success && env.Message != "" {
		return &common.RetryableError{
			Err:       &Error{Status: resp.StatusCode, Message: env.Message},
			Retryable: false,
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return common.NewUserError(GenericErrorMessage,
				fmt.Errorf("failed to decode response: %w", err))
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any, authed bool) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, authed)
}

// get executes an idempotent read with bounded retries. Definitive
// backend rejections and session expiry abort immediately; transient
// failures back off and try again. Money-moving calls never go through
// here.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return common.WithRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, query, nil, out, true)
	}, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
	})
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, true)
}
