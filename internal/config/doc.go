// Package config loads the authcode configuration file.
//
// The file lives at ~/.config/authcode/config.yaml unless --config names
// another path:
//
//	provider: imgur
//	clientId: 0123456789abcde
//	clientSecret: ...
//	scope: ""
//	callbackPort: 8085
//	timeout: 5m
//
// Instead of a built-in provider, an issuer may be given. Its endpoints are
// discovered from RFC 8414 or OpenID Connect metadata:
//
//	issuer: https://accounts.example.com
//	lifetime: refresh
//	clientId: authcode
//
// The client secret may be supplied through AUTHCODE_CLIENT_SECRET, which
// takes precedence over the file.
package config
