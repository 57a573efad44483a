package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/R-Theory/core-engine-client/internal/config"
	interrors "github.com/R-Theory/core-engine-client/internal/errors"
	"github.com/R-Theory/core-engine-client/session"
)

// Client performs backend calls with automatic credential attachment. The
// access token is read from the session manager at dispatch time, so a token
// rotation only affects requests dispatched after it; in-flight requests
// keep the credential they were sent with.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	sessions       *session.Manager
	onUnauthorized func()
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithOnUnauthorized sets the hook invoked after a 401 has cleared the
// session, typically a redirect to the login entry point.
func WithOnUnauthorized(fn func()) ClientOption {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// NewClient creates an authenticated backend client. Requests are bounded by
// the configured ceiling; a timeout surfaces as a plain request error, never
// as an authorization failure.
func NewClient(cfg config.BackendConfig, sessions *session.Manager, options ...ClientOption) (*Client, error) {
	if sessions == nil {
		return nil, fmt.Errorf("[api.NewClient] session manager is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: &http.Client{Timeout: cfg.GetRequestTimeout()},
		sessions:   sessions,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Do dispatches the request. When the session holds an access token it is
// attached as a bearer credential; otherwise the request goes out
// unauthenticated.
//
// A 401 response clears the session and fires the unauthorized hook exactly
// once, returns ErrUnauthorized, and never retries the original request.
// Every other response is handed back to the caller unmodified; the caller
// owns the body.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	body, contentType, err := req.encode()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.URL(), body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", req.Method, req.Path)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token := c.sessions.State().AccessToken; token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	httpReq.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.Path)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if err := c.sessions.ClearAuth(ctx); err != nil {
			log.Err(err).Msg("Failed to clear session after 401")
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, interrors.ErrUnauthorized
	}

	return resp, nil
}

// DoJSON dispatches the request and decodes a 2xx JSON response into out.
// Non-2xx statuses (other than 401, handled by Do) come back as *StatusError
// for the caller to handle locally.
func (c *Client) DoJSON(ctx context.Context, req *Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", req.Method, req.Path)
	}
	return nil
}

// StatusError is a non-success backend response passed through to the
// caller.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}
