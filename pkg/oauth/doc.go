// Package oauth is an OAuth 2.0 client for the authorization code grant.
//
// It builds authorization URLs, exchanges authorization codes for bearer
// tokens, and refreshes expired tokens, validating every token endpoint
// response against the shape RFC 6749 and RFC 6750 require.
//
// # Lifetimes
//
// Every token carries one of three lifetimes, fixed per provider at compile
// time:
//
//   - Static: the token never expires (GitHub)
//   - Expiring: the token expires and cannot be renewed
//   - Refresh: the token expires and carries a refresh token
//
// A response for an Expiring provider that contains a refresh_token is
// rejected. On refresh, a provider may omit refresh_token; the previous one is
// kept.
//
// # Errors
//
// All Client operations return a *ClientError whose Kind tells transport
// failures, malformed URLs, undecodable bodies, malformed responses
// (*ParseError) and provider-reported errors (*OAuth2Error) apart. A provider
// error is detected before the body is parsed as a token:
//
//	token, err := client.RequestToken(ctx, transport, code)
//	if oauth.IsOAuth2Error(err, oauth.ErrorInvalidGrant) {
//		// the code was already used or has expired
//	}
//
// # Usage
//
//	client, err := oauth.NewClient(oauth.Imgur, clientID, clientSecret, redirectURI)
//	if err != nil {
//		return err
//	}
//	fmt.Println(client.AuthURI("", state))
//
//	transport := oauth.NewHTTPTransport()
//	token, err := client.RequestToken(ctx, transport, code)
//	...
//	if token.Expired() {
//		token, err = client.RefreshToken(ctx, transport, token, "")
//	}
//
// The package keeps no state between calls: it does not store tokens,
// coordinate concurrent refreshes, or retry failed requests.
package oauth
