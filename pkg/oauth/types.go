package oauth

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// TokenTypeBearer is the only token type this package accepts (RFC 6750).
const TokenTypeBearer = "Bearer"

// Bearer is a bearer access token together with its lifetime.
//
// A Bearer is an immutable value: refreshing produces a new Bearer and the
// caller discards the previous one.
type Bearer[L Lifetime] struct {
	accessToken string
	scope       string
	idToken     string
	lifetime    L
}

// NewBearer assembles a Bearer from already-validated parts.
func NewBearer[L Lifetime](accessToken, scope, idToken string, lifetime L) *Bearer[L] {
	return &Bearer[L]{
		accessToken: accessToken,
		scope:       scope,
		idToken:     idToken,
		lifetime:    lifetime,
	}
}

// ParseBearer builds a Bearer from a token endpoint response.
// The first shape violation encountered is returned as a *ParseError.
func ParseBearer[L Lifetime](v any) (*Bearer[L], error) {
	lifetime, err := parseLifetime[L](v)
	if err != nil {
		return nil, err
	}
	return parseBearerWithLifetime(v, lifetime)
}

// ParseBearerInherit builds a Bearer from a refresh response. The access
// token, scope and ID token always come from v; the lifetime may inherit the
// refresh token from prev when the provider omits it. A nil prev behaves like
// ParseBearer.
func ParseBearerInherit[L Lifetime](v any, prev *Bearer[L]) (*Bearer[L], error) {
	if prev == nil {
		return ParseBearer[L](v)
	}
	lifetime, err := parseLifetimeInherit(v, prev.lifetime)
	if err != nil {
		return nil, err
	}
	return parseBearerWithLifetime(v, lifetime)
}

func parseBearerWithLifetime[L Lifetime](v any, lifetime L) (*Bearer[L], error) {
	obj, err := asObject(v)
	if err != nil {
		return nil, err
	}

	tokenType, err := obj.requiredString("token_type")
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(tokenType, TokenTypeBearer) {
		return nil, errExpectedFieldValue("token_type", TokenTypeBearer)
	}

	accessToken, err := obj.requiredString("access_token")
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, errExpectedFieldValue("access_token", "non-empty string")
	}

	scope, _ := obj.optionalString("scope")
	idToken, _ := obj.optionalString("id_token")

	return NewBearer(accessToken, scope, idToken, lifetime), nil
}

// AccessToken returns the access token.
func (b *Bearer[L]) AccessToken() string { return b.accessToken }

// Scope returns the granted scope, or "" if the provider did not return one.
func (b *Bearer[L]) Scope() string { return b.scope }

// IDToken returns the OpenID Connect ID token, or "" if absent.
func (b *Bearer[L]) IDToken() string { return b.idToken }

// Lifetime returns the token's lifetime.
func (b *Bearer[L]) Lifetime() L { return b.lifetime }

// Expired reports whether the access token has expired. It is evaluated on
// every call.
func (b *Bearer[L]) Expired() bool { return b.lifetime.Expired() }

// Scopes returns the scope as a slice of individual scopes.
func (b *Bearer[L]) Scopes() []string {
	if b.scope == "" {
		return nil
	}
	return strings.Fields(b.scope)
}

// Expiry returns the expiry time, or the zero time for a Static lifetime.
func (b *Bearer[L]) Expiry() time.Time {
	switch l := any(b.lifetime).(type) {
	case Expiring:
		return l.Expires()
	case Refresh:
		return l.Expires()
	default:
		return time.Time{}
	}
}

// RefreshToken returns the refresh token, or "" when the lifetime has none.
func (b *Bearer[L]) RefreshToken() string {
	if r, ok := any(b.lifetime).(Refresh); ok {
		return r.RefreshToken()
	}
	return ""
}

// OAuth2Token converts the Bearer to an oauth2.Token for use with
// golang.org/x/oauth2 based HTTP clients.
func (b *Bearer[L]) OAuth2Token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  b.accessToken,
		TokenType:    TokenTypeBearer,
		RefreshToken: b.RefreshToken(),
		Expiry:       b.Expiry(),
	}

	if b.idToken != "" {
		token = token.WithExtra(map[string]interface{}{
			"id_token": b.idToken,
		})
	}

	return token
}

// LogValue implements slog.LogValuer. Credentials are never logged.
func (b *Bearer[L]) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Any("access_token", NewRedactedToken(b.accessToken)),
		slog.Bool("expired", b.Expired()),
	}
	if b.scope != "" {
		attrs = append(attrs, slog.String("scope", b.scope))
	}
	if expiry := b.Expiry(); !expiry.IsZero() {
		attrs = append(attrs, slog.Time("expiry", expiry))
	}
	if b.RefreshToken() != "" {
		attrs = append(attrs, slog.Bool("has_refresh_token", true))
	}
	return slog.GroupValue(attrs...)
}
