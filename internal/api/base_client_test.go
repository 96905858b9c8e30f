package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// mockHTTPClient is a test double for HTTPClient.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

// TestBaseClientDo_SetsHeaders tests that common headers and the bearer token are applied.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestBaseClientDo_SetsHeaders(t *testing.T) {
	// Arrange
	var captured *http.Request
	mockHTTP := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			captured = req
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString(""))}, nil
		},
	}
	client := NewBaseClient("https://example.test", "secret", mockHTTP)
	client.Headers["Accept"] = "application/json"

	// Act
	resp, err := client.Do(context.Background(), http.MethodGet, "https://example.test/x", nil)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	resp.Body.Close()

	if got := captured.Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("expected bearer token header, got %q", got)
	}
	if got := captured.Header.Get("Accept"); got != "application/json" {
		t.Errorf("expected Accept header, got %q", got)
	}
}

// TestBaseClientDo_NoTokenNoAuthorization tests that an empty token leaves auth to the HTTP client.
func TestBaseClientDo_NoTokenNoAuthorization(t *testing.T) {
	// Arrange
	mockHTTP := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "" {
				t.Error("expected no Authorization header")
			}
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString(""))}, nil
		},
	}
	client := NewBaseClient("https://example.test", "", mockHTTP)

	// Act
	resp, err := client.Do(context.Background(), http.MethodGet, "https://example.test/x", nil)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	resp.Body.Close()
}

// TestBaseClientDo_TransportError tests that transport failures are wrapped.
func TestBaseClientDo_TransportError(t *testing.T) {
	// Arrange
	boom := errors.New("connection reset")
	mockHTTP := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return nil, boom
		},
	}
	client := NewBaseClient("https://example.test", "", mockHTTP)

	// Act
	_, err := client.Do(context.Background(), http.MethodGet, "https://example.test/x", nil)

	// Assert
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}

// TestNewStatusError tests status error formatting.
func TestNewStatusError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusForbidden,
		Body:       io.NopCloser(bytes.NewBufferString(`{"message":"Must have admin rights"}`)),
	}

	err := NewStatusError(resp)

	if err.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", err.StatusCode)
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "admin rights") {
		t.Errorf("unexpected error text: %v", err)
	}
}
