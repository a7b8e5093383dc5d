package oauth

import (
	"errors"
	"fmt"
)

// ErrorCode is an OAuth 2.0 error code (RFC 6749 section 5.2).
// Codes outside the registered set are kept verbatim.
type ErrorCode string

const (
	ErrorInvalidRequest       ErrorCode = "invalid_request"
	ErrorInvalidClient        ErrorCode = "invalid_client"
	ErrorInvalidGrant         ErrorCode = "invalid_grant"
	ErrorUnauthorizedClient   ErrorCode = "unauthorized_client"
	ErrorUnsupportedGrantType ErrorCode = "unsupported_grant_type"
	ErrorInvalidScope         ErrorCode = "invalid_scope"
)

// Registered reports whether the code is one of the RFC 6749 section 5.2 codes.
func (c ErrorCode) Registered() bool {
	switch c {
	case ErrorInvalidRequest, ErrorInvalidClient, ErrorInvalidGrant,
		ErrorUnauthorizedClient, ErrorUnsupportedGrantType, ErrorInvalidScope:
		return true
	default:
		return false
	}
}

// OAuth2Error is an error reported by the provider in a token endpoint response.
type OAuth2Error struct {
	Code        ErrorCode
	Description string
	URI         string
}

// Error implements the error interface.
func (e *OAuth2Error) Error() string {
	msg := string(e.Code)
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.URI != "" {
		msg += " (" + e.URI + ")"
	}
	return msg
}

// parseOAuth2Error extracts an error object from a token endpoint response.
// It returns nil when the response carries no string "error" field.
func parseOAuth2Error(v any) *OAuth2Error {
	obj, err := asObject(v)
	if err != nil {
		return nil
	}
	code, ok := obj.optionalString("error")
	if !ok {
		return nil
	}
	description, _ := obj.optionalString("error_description")
	uri, _ := obj.optionalString("error_uri")
	return &OAuth2Error{
		Code:        ErrorCode(code),
		Description: description,
		URI:         uri,
	}
}

// ClientErrorKind classifies a ClientError.
type ClientErrorKind int

const (
	// KindTransport is a network or HTTP failure. It is never retried.
	KindTransport ClientErrorKind = iota
	// KindURL is a provider URL that does not parse.
	KindURL
	// KindJSON is a response body that is not valid JSON.
	KindJSON
	// KindParse is valid JSON with the wrong shape. Err is a *ParseError.
	KindParse
	// KindOAuth2 is an error reported by the provider. Err is an *OAuth2Error.
	KindOAuth2
)

// String makes ClientErrorKind satisfy the fmt.Stringer interface.
func (k ClientErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindURL:
		return "url"
	case KindJSON:
		return "json"
	case KindParse:
		return "parse"
	case KindOAuth2:
		return "oauth2"
	default:
		return "unknown"
	}
}

// ClientError is returned by every Client operation that fails.
type ClientError struct {
	Kind ClientErrorKind
	Err  error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return fmt.Sprintf("oauth %s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.As and errors.Is.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a transport failure.
func NewTransportError(err error) *ClientError {
	return &ClientError{Kind: KindTransport, Err: err}
}

// NewJSONError wraps a response body decode failure.
func NewJSONError(err error) *ClientError {
	return &ClientError{Kind: KindJSON, Err: err}
}

// ErrNotRefreshable is returned by RefreshToken for tokens whose lifetime has
// no refresh token.
var ErrNotRefreshable = errors.New("token lifetime does not support refresh")

// IsOAuth2Error reports whether err carries a provider error with the given code.
func IsOAuth2Error(err error, code ErrorCode) bool {
	var oauthErr *OAuth2Error
	if !errors.As(err, &oauthErr) {
		return false
	}
	return oauthErr.Code == code
}

// ErrorKind returns the kind of the ClientError in err's chain.
func ErrorKind(err error) (ClientErrorKind, bool) {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return 0, false
	}
	return clientErr.Kind, true
}

// wrapTransportError keeps a *ClientError produced by a transport (for
// example a JSON decode failure) and wraps anything else as KindTransport.
func wrapTransportError(err error) error {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return err
	}
	return NewTransportError(err)
}
