package oauth

import (
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider describes an OAuth 2.0 provider's endpoints. L is the lifetime of
// the tokens the provider issues, so a Client built from a Provider[Refresh]
// returns Bearer[Refresh] tokens.
type Provider[L Lifetime] struct {
	// Name identifies the provider in logs and configuration.
	Name string

	// AuthURI is the authorization endpoint.
	AuthURI string

	// TokenURI is the token endpoint.
	TokenURI string

	// CredentialsInBody adds client_id and client_secret to the token request
	// body in addition to HTTP Basic authentication.
	CredentialsInBody bool
}

// Validate checks that both endpoints are absolute URLs.
func (p Provider[L]) Validate() error {
	for _, endpoint := range []struct{ name, value string }{
		{"authorization", p.AuthURI},
		{"token", p.TokenURI},
	} {
		u, err := url.Parse(endpoint.value)
		if err != nil {
			return &ClientError{Kind: KindURL, Err: fmt.Errorf("invalid %s endpoint for %s: %w", endpoint.name, p.Name, err)}
		}
		if !u.IsAbs() || u.Host == "" {
			return &ClientError{Kind: KindURL, Err: fmt.Errorf("%s endpoint for %s is not an absolute URL: %q", endpoint.name, p.Name, endpoint.value)}
		}
	}
	return nil
}

// Endpoint returns the provider's endpoints as an oauth2.Endpoint.
func (p Provider[L]) Endpoint() oauth2.Endpoint {
	style := oauth2.AuthStyleInHeader
	if p.CredentialsInBody {
		style = oauth2.AuthStyleInParams
	}
	return oauth2.Endpoint{
		AuthURL:   p.AuthURI,
		TokenURL:  p.TokenURI,
		AuthStyle: style,
	}
}

// ProviderFromEndpoint builds a Provider from an oauth2.Endpoint, such as the
// ones in golang.org/x/oauth2/endpoints.
func ProviderFromEndpoint[L Lifetime](name string, endpoint oauth2.Endpoint) Provider[L] {
	return Provider[L]{
		Name:              name,
		AuthURI:           endpoint.AuthURL,
		TokenURI:          endpoint.TokenURL,
		CredentialsInBody: endpoint.AuthStyle == oauth2.AuthStyleInParams,
	}
}

// GitHub issues tokens that never expire.
//
// See https://docs.github.com/en/apps/oauth-apps/building-oauth-apps/authorizing-oauth-apps.
var GitHub = ProviderFromEndpoint[Static]("github", endpoints.GitHub)

// GoogleWeb is Google's web server application flow. Without offline access
// it issues expiring tokens with no refresh token.
var GoogleWeb = Provider[Expiring]{
	Name:              "google-web",
	AuthURI:           endpoints.Google.AuthURL,
	TokenURI:          endpoints.Google.TokenURL,
	CredentialsInBody: true,
}

// GoogleInstalled is Google's installed application flow, which issues
// refreshable tokens.
var GoogleInstalled = Provider[Refresh]{
	Name:              "google-installed",
	AuthURI:           endpoints.Google.AuthURL,
	TokenURI:          endpoints.Google.TokenURL,
	CredentialsInBody: true,
}

// Imgur issues refreshable tokens.
//
// See https://apidocs.imgur.com/#authorization-and-oauth.
var Imgur = Provider[Refresh]{
	Name:     "imgur",
	AuthURI:  "https://api.imgur.com/oauth2/authorize",
	TokenURI: "https://api.imgur.com/oauth2/token",
}
