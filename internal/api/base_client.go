package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	// DefaultPageSize is the default number of items per page
	DefaultPageSize = 100
	// maxErrorBodyBytes caps how much of an error response is kept
	maxErrorBodyBytes = 4096
)

// ErrMalformedResponse is returned when a response cannot be trusted.
var ErrMalformedResponse = errors.New("malformed response")

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// NewStatusError builds a StatusError from resp, reading a bounded part of the body.
func NewStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}

// BaseClient contains common fields and functionality for API clients.
type BaseClient struct {
	BaseURL    string
	// Token is only for callers whose HTTPClient does not authenticate
	// requests itself. Production wires an oauth2 client and leaves it empty.
	Token      string
	HTTPClient HTTPClient
	Headers    map[string]string // sent with every request
}

// NewBaseClient creates a new base client.
func NewBaseClient(baseURL, token string, httpClient HTTPClient) *BaseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BaseClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: httpClient,
		Headers:    map[string]string{},
	}
}

// Do builds a request for method and url, applies the common headers and sends it.
// The caller owns the response body.
func (c *BaseClient) Do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
