package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "http://localhost:5001"
	defaultTimeout = 10 * time.Second
	apiPrefix      = "/v1"
)

// TokenSource supplies the bearer token for authenticated calls.
// An empty token means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a func to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Options configures a Client.
type Options struct {
	// BaseURL is the server root, without the /v1 prefix.
	BaseURL string
	// Timeout is the fixed per-call duration; calls exceeding it fail
	// as network errors.
	Timeout time.Duration
	// Tokens supplies the bearer token. May be nil.
	Tokens TokenSource
	// OnSessionInvalid is called when an auth-scoped endpoint returns
	// 401, meaning the session is dead. May be nil.
	OnSessionInvalid func()
	// Logger may be nil.
	Logger *zap.Logger
}

// Client talks to the shelfstream REST backend.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokens           TokenSource
	onSessionInvalid func()
	logger           *zap.Logger
}

// NewClient creates a client with sane defaults for anything unset.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		httpClient:       &http.Client{Timeout: opts.Timeout},
		tokens:           opts.Tokens,
		onSessionInvalid: opts.OnSessionInvalid,
		logger:           opts.Logger,
	}
}

// BaseURL returns the configured server root.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs one HTTP call against a /v1 path and returns the parsed
// envelope. Any failure, transport errors included, comes back as an
// *Error; the boolean cast via errors.As always succeeds.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Code: CodeDecodeError, Message: fmt.Sprintf("encoding request body: %v", err), Method: method, Path: path}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reqBody)
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: err.Error(), Method: method, Path: path}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &Error{Code: CodeNetworkError, Message: err.Error(), Method: method, Path: path}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: err.Error(), Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := normalizeError(resp.StatusCode, respBody, http.StatusText(resp.StatusCode))
		if apiErr.Path == "" {
			apiErr.Path = path
		}
		if apiErr.Method == "" {
			apiErr.Method = method
		}
		if resp.StatusCode == http.StatusUnauthorized && c.sessionInvalidating(path) && c.onSessionInvalid != nil {
			c.logger.Info("session invalidated by server", zap.String("path", path))
			c.onSessionInvalid()
		}
		return nil, apiErr
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Code:       CodeDecodeError,
			Message:    fmt.Sprintf("decoding response: %v", err),
			Method:     method,
			Path:       path,
		}
	}
	return &env, nil
}

// Get issues a GET against a /v1 path.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Health checks the unversioned /health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("creating health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("health check returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var health HealthData
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decoding health response: %w", err)
	}
	return &health, nil
}

// sessionInvalidating reports whether a 401 on this path means the
// stored session is dead. A 401 from the auth endpoints themselves is
// just a bad credential and leaves the session alone.
func (c *Client) sessionInvalidating(path string) bool {
	return !strings.HasPrefix(path, "/auth/")
}
