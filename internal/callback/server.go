package callback

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"authcode/pkg/logging"
)

// CallbackPath is the path the authorization server redirects to.
const CallbackPath = "/callback"

var (
	successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Authorization complete</title>
<style>body{font-family:sans-serif;margin:4em;color:#222}</style></head>
<body>
<h1>Authorization complete</h1>
<p>You can close this window and return to the terminal.</p>
</body>
</html>
`))

	errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Authorization failed</title>
<style>body{font-family:sans-serif;margin:4em;color:#222}code{color:#b00}</style></head>
<body>
<h1>Authorization failed</h1>
<p><code>{{.Error}}</code></p>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<p>Return to the terminal for details.</p>
</body>
</html>
`))
)

// Result holds the query parameters of the authorization redirect.
type Result struct {
	// Code is the authorization code.
	Code string

	// State must match the state sent in the authorization request.
	State string

	// Error is the RFC 6749 error code when the user or server refused.
	Error string

	// ErrorDescription is a human-readable error description.
	ErrorDescription string
}

// IsError returns true if the redirect reported an authorization error.
func (r *Result) IsError() bool {
	return r.Error != ""
}

// Server is a short-lived loopback HTTP server that accepts one redirect.
type Server struct {
	port      int
	server    *http.Server
	listener  net.Listener
	resultCh  chan *Result
	errorCh   chan error
	once      sync.Once
	stopOnce  sync.Once
	serverURL string
}

// NewServer creates a callback server for port. If port is 0, a random
// available port is used.
func NewServer(port int) *Server {
	return &Server{
		port:     port,
		resultCh: make(chan *Result, 1),
		errorCh:  make(chan error, 1),
	}
}

// Start begins listening and returns the redirect URI to send in the
// authorization request. The server stops when ctx is cancelled.
func (s *Server) Start(ctx context.Context) (string, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback server on %s: %w", addr, err)
	}

	s.listener = listener
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.serverURL = fmt.Sprintf("http://localhost:%d", s.port)

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, s.handleCallback)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errorCh <- err:
			default:
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	logging.Debug("Callback", "Listening for authorization redirect on %s", s.RedirectURI())
	return s.RedirectURI(), nil
}

// WaitForCallback blocks until the redirect arrives, the server fails or
// ctx is done.
func (s *Server) WaitForCallback(ctx context.Context) (*Result, error) {
	select {
	case result := <-s.resultCh:
		return result, nil
	case err := <-s.errorCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	var handled bool
	s.once.Do(func() {
		handled = true
		s.processCallback(w, r)
	})

	if !handled {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
	}
}

// processCallback runs exactly once per server.
func (s *Server) processCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'unsafe-inline'")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("Cache-Control", "no-store")

	query := r.URL.Query()
	result := &Result{
		Code:             query.Get("code"),
		State:            query.Get("state"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}

	tmpl := successPage
	data := map[string]string{}
	if result.IsError() {
		tmpl = errorPage
		data = map[string]string{
			"Error":       result.Error,
			"Description": result.ErrorDescription,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}

	select {
	case s.resultCh <- result:
	default:
	}

	// Give the response time to reach the browser before shutting down.
	go func() {
		time.Sleep(1 * time.Second)
		s.Stop()
	}()
}

// Stop shuts the server down. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.server.Shutdown(ctx)
		}
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}

// RedirectURI returns the URI the authorization server must redirect to.
func (s *Server) RedirectURI() string {
	return s.serverURL + CallbackPath
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}
