package oauth

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
)

// Client performs the OAuth 2.0 authorization code grant against one provider.
//
// A Client holds no mutable state. Its methods may be called concurrently;
// each token request makes exactly one Transport call and never retries.
type Client[L Lifetime] struct {
	provider     Provider[L]
	clientID     string
	clientSecret string
	redirectURI  string
	logger       *slog.Logger
}

// ClientOption configures the OAuth client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a client for provider. redirectURI may be empty, in which
// case the provider's registered redirect is used.
//
// The provider endpoints are validated here, so AuthURI cannot fail later.
func NewClient[L Lifetime](provider Provider[L], clientID, clientSecret, redirectURI string, opts ...ClientOption) (*Client[L], error) {
	if err := provider.Validate(); err != nil {
		return nil, err
	}

	options := clientOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}

	return &Client[L]{
		provider:     provider,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		logger:       options.logger,
	}, nil
}

// Provider returns the provider the client was built for.
func (c *Client[L]) Provider() Provider[L] {
	return c.provider
}

// AuthURI builds the authorization URL the user must visit. Empty scope and
// state are omitted. Query parameters already present in the provider's
// authorization endpoint are kept.
func (c *Client[L]) AuthURI(scope, state string) string {
	// The endpoint was validated in NewClient.
	authURL, _ := url.Parse(c.provider.AuthURI)

	query := authURL.Query()
	query.Set("response_type", "code")
	query.Set("client_id", c.clientID)

	if c.redirectURI != "" {
		query.Set("redirect_uri", c.redirectURI)
	}
	if scope != "" {
		query.Set("scope", scope)
	}
	if state != "" {
		query.Set("state", state)
	}

	authURL.RawQuery = query.Encode()
	return authURL.String()
}

// RequestToken exchanges an authorization code for a token.
func (c *Client[L]) RequestToken(ctx context.Context, t Transport, code string) (*Bearer[L], error) {
	body := url.Values{
		"grant_type": {"authorization_code"},
		"code":       {code},
	}
	if c.redirectURI != "" {
		body.Set("redirect_uri", c.redirectURI)
	}

	resp, err := c.post(ctx, t, body)
	if err != nil {
		return nil, err
	}

	token, err := ParseBearer[L](resp)
	if err != nil {
		return nil, &ClientError{Kind: KindParse, Err: err}
	}

	c.logger.Debug("Obtained OAuth token",
		"provider", c.provider.Name,
		"token", token)
	return token, nil
}

// RefreshToken obtains a new token using prev's refresh token. Fields the
// provider omits from the refresh response, such as an unchanged refresh
// token, are inherited from prev. An empty scope is omitted.
//
// Tokens whose lifetime is not Refresh return ErrNotRefreshable without a
// network call.
func (c *Client[L]) RefreshToken(ctx context.Context, t Transport, prev *Bearer[L], scope string) (*Bearer[L], error) {
	if prev == nil {
		return nil, errors.New("no previous token to refresh")
	}
	lifetime, ok := any(prev.lifetime).(Refresh)
	if !ok {
		return nil, ErrNotRefreshable
	}

	body := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {lifetime.RefreshToken()},
	}
	if scope != "" {
		body.Set("scope", scope)
	}

	resp, err := c.post(ctx, t, body)
	if err != nil {
		return nil, err
	}

	token, err := ParseBearerInherit(resp, prev)
	if err != nil {
		return nil, &ClientError{Kind: KindParse, Err: err}
	}

	c.logger.Debug("Refreshed OAuth token",
		"provider", c.provider.Name,
		"token", token)
	return token, nil
}

// post sends a token request and checks the response for a provider error
// before any token parsing is attempted.
func (c *Client[L]) post(ctx context.Context, t Transport, body url.Values) (any, error) {
	if c.provider.CredentialsInBody {
		body.Set("client_id", c.clientID)
		body.Set("client_secret", c.clientSecret)
	}

	resp, err := t.Post(ctx, c.provider.TokenURI, c.clientID, c.clientSecret, body)
	if err != nil {
		c.logger.Debug("Token request failed",
			"provider", c.provider.Name,
			"grant_type", body.Get("grant_type"),
			"error", err)
		return nil, wrapTransportError(err)
	}

	if oauthErr := parseOAuth2Error(resp); oauthErr != nil {
		c.logger.Debug("Provider rejected token request",
			"provider", c.provider.Name,
			"grant_type", body.Get("grant_type"),
			"error", oauthErr.Code)
		return nil, &ClientError{Kind: KindOAuth2, Err: oauthErr}
	}

	return resp, nil
}
