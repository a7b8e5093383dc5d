package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPTransport(t *testing.T) {
	t.Run("creates transport with defaults", func(t *testing.T) {
		tr := NewHTTPTransport()
		require.NotNil(t, tr.httpClient)
		assert.Equal(t, DefaultHTTPTimeout, tr.httpClient.Timeout)
	})

	t.Run("applies options", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		tr := NewHTTPTransport(WithHTTPClient(custom))
		assert.Same(t, custom, tr.httpClient)
	})
}

func TestHTTPTransport_Post(t *testing.T) {
	t.Run("sends form with basic auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "id", user)
			assert.Equal(t, "secret", pass)

			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"expires_in": 3600})
		}))
		defer server.Close()

		tr := NewHTTPTransport(WithHTTPClient(server.Client()))
		v, err := tr.Post(context.Background(), server.URL, "id", "secret", url.Values{"grant_type": {"authorization_code"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"expires_in": json.Number("3600")}, v)
	})

	t.Run("decodes error bodies regardless of status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer server.Close()

		tr := NewHTTPTransport(WithHTTPClient(server.Client()))
		v, err := tr.Post(context.Background(), server.URL, "id", "secret", url.Values{})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"error": "invalid_grant"}, v)
	})

	t.Run("non-JSON body is a JSON error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer server.Close()

		tr := NewHTTPTransport(WithHTTPClient(server.Client()))
		_, err := tr.Post(context.Background(), server.URL, "id", "secret", url.Values{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")

		kind, ok := ErrorKind(err)
		require.True(t, ok)
		assert.Equal(t, KindJSON, kind)
	})

	t.Run("cancelled context is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tr := NewHTTPTransport(WithHTTPClient(server.Client()))
		_, err := tr.Post(ctx, server.URL, "id", "secret", url.Values{})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)

		_, ok := ErrorKind(err)
		assert.False(t, ok, "the client wraps plain transport errors")
	})
}

func TestTransportFunc(t *testing.T) {
	var gotURL string
	tr := TransportFunc(func(_ context.Context, tokenURL, _, _ string, _ url.Values) (any, error) {
		gotURL = tokenURL
		return map[string]any{}, nil
	})

	_, err := tr.Post(context.Background(), "https://example.com/token", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/token", gotURL)
}
