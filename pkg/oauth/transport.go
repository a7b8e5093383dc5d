package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// maxResponseSize caps how much of a token endpoint response is read.
const maxResponseSize = 1 << 20

// Transport performs a token endpoint request.
//
// Post sends body as application/x-www-form-urlencoded with clientID and
// clientSecret as HTTP Basic credentials and returns the decoded JSON
// response. Implementations must be safe for concurrent use. Cancellation and
// timeouts are the implementation's concern.
type Transport interface {
	Post(ctx context.Context, tokenURL, clientID, clientSecret string, body url.Values) (any, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, tokenURL, clientID, clientSecret string, body url.Values) (any, error)

// Post calls f.
func (f TransportFunc) Post(ctx context.Context, tokenURL, clientID, clientSecret string, body url.Values) (any, error) {
	return f(ctx, tokenURL, clientID, clientSecret, body)
}

// HTTPTransport is a Transport backed by net/http.
type HTTPTransport struct {
	httpClient *http.Client
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.httpClient = httpClient
	}
}

// NewHTTPTransport creates an HTTPTransport.
func NewHTTPTransport(opts ...HTTPTransportOption) *HTTPTransport {
	t := &HTTPTransport{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Post implements Transport.
//
// The body is decoded whatever the HTTP status, since providers report
// RFC 6749 errors as JSON with status 400 or 401. A body that is not JSON is
// returned as a KindJSON ClientError naming the status.
func (t *HTTPTransport) Post(ctx context.Context, tokenURL, clientID, clientSecret string, body url.Values) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(body.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.SetBasicAuth(clientID, clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, NewJSONError(fmt.Errorf("failed to parse token response (status %d): %w", resp.StatusCode, err))
	}

	return value, nil
}
