package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"authcode/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs rootCmd with args against an empty home directory
// and without a client secret in the environment.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv(config.ClientSecretEnv, "")
	os.Unsetenv(config.ClientSecretEnv)
	return executeCommandWithEnv(t, args...)
}

// executeCommandWithEnv is executeCommand without touching the client
// secret variable.
func executeCommandWithEnv(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// fakeAuthServer publishes RFC 8414 metadata and a token endpoint whose
// response is chosen by the test.
type fakeAuthServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	response map[string]any
	forms    []url.Values
	basic    []string
}

func newFakeAuthServer(t *testing.T) *fakeAuthServer {
	t.Helper()

	s := &fakeAuthServer{status: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/oauth-authorization-server", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 s.URL,
			"authorization_endpoint": s.URL + "/authorize",
			"token_endpoint":         s.URL + "/token",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		user, password, _ := r.BasicAuth()

		s.mu.Lock()
		s.forms = append(s.forms, r.PostForm)
		s.basic = append(s.basic, user+":"+password)
		status, response := s.status, s.response
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *fakeAuthServer) respond(status int, response map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.response = response
}

func (s *fakeAuthServer) lastForm() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.forms) == 0 {
		return nil
	}
	return s.forms[len(s.forms)-1]
}

// lastBasicAuth returns the Basic credentials of the last token request as
// "user:password".
func (s *fakeAuthServer) lastBasicAuth() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.basic) == 0 {
		return ""
	}
	return s.basic[len(s.basic)-1]
}

func decodeToken(t *testing.T, out string) map[string]any {
	t.Helper()
	var token map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &token), out)
	return token
}
