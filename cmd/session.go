package cmd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"authcode/internal/config"
	"authcode/internal/formatting"
	"authcode/pkg/logging"
	"authcode/pkg/oauth"
)

// session hides the compile-time lifetime of an oauth.Client so commands
// can work with providers chosen at runtime.
type session interface {
	ProviderName() string
	Lifetime() string
	AuthURI(scope, state string) string
	Exchange(ctx context.Context, code string) (formatting.TokenView, error)
	Refresh(ctx context.Context, refreshToken, scope string) (formatting.TokenView, error)
}

// newTransport is replaced in tests.
var newTransport = func() oauth.Transport {
	return oauth.NewHTTPTransport()
}

type clientSession[L oauth.Lifetime] struct {
	client    *oauth.Client[L]
	transport oauth.Transport
}

func newClientSession[L oauth.Lifetime](provider oauth.Provider[L], cfg config.Config, redirectURI string) (session, error) {
	client, err := oauth.NewClient(provider, cfg.ClientID, cfg.ClientSecret, redirectURI,
		oauth.WithLogger(logging.Logger("OAuth")))
	if err != nil {
		return nil, err
	}
	return &clientSession[L]{client: client, transport: newTransport()}, nil
}

func (s *clientSession[L]) ProviderName() string {
	return s.client.Provider().Name
}

func (s *clientSession[L]) Lifetime() string {
	return lifetimeName[L]()
}

func (s *clientSession[L]) AuthURI(scope, state string) string {
	return s.client.AuthURI(scope, state)
}

func (s *clientSession[L]) Exchange(ctx context.Context, code string) (formatting.TokenView, error) {
	token, err := s.client.RequestToken(ctx, s.transport, code)
	if err != nil {
		return formatting.TokenView{}, err
	}
	return s.view(token), nil
}

// Refresh rebuilds a token around refreshToken and refreshes it. Providers
// without a Refresh lifetime get oauth.ErrNotRefreshable from the client.
func (s *clientSession[L]) Refresh(ctx context.Context, refreshToken, scope string) (formatting.TokenView, error) {
	var lifetime L
	if r, ok := any(&lifetime).(*oauth.Refresh); ok {
		*r = oauth.NewRefresh(refreshToken, time.Now())
	}

	prev := oauth.NewBearer("", "", "", lifetime)
	token, err := s.client.RefreshToken(ctx, s.transport, prev, scope)
	if err != nil {
		return formatting.TokenView{}, err
	}
	return s.view(token), nil
}

func (s *clientSession[L]) view(token *oauth.Bearer[L]) formatting.TokenView {
	t := token.OAuth2Token()
	idToken, _ := t.Extra("id_token").(string)

	logging.Debug("Token", "Received %s token from %s", s.Lifetime(), s.ProviderName())
	return formatting.TokenView{
		Provider:     s.ProviderName(),
		Lifetime:     s.Lifetime(),
		TokenType:    t.TokenType,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Scope:        token.Scope(),
		IDToken:      idToken,
		Expiry:       t.Expiry,
	}
}

func lifetimeName[L oauth.Lifetime]() string {
	var lifetime L
	switch any(lifetime).(type) {
	case oauth.Static:
		return config.LifetimeStatic
	case oauth.Expiring:
		return config.LifetimeExpiring
	default:
		return config.LifetimeRefresh
	}
}

// newSession builds the session for cfg: a built-in provider, or one whose
// endpoints are discovered from cfg.Issuer.
func newSession(ctx context.Context, cfg config.Config, redirectURI string) (session, error) {
	if cfg.Issuer == "" {
		return newBuiltinSession(cfg, redirectURI)
	}

	discoverer := oauth.NewDiscoverer(oauth.WithDiscoveryLogger(logging.Logger("Discovery")))
	md, err := discoverer.Discover(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	name := cfg.Issuer
	if u, err := url.Parse(cfg.Issuer); err == nil && u.Host != "" {
		name = u.Host
	}
	logging.Info("Discovery", "Using endpoints discovered for %s", md.Issuer)

	switch cfg.Lifetime {
	case config.LifetimeStatic:
		return discoveredSession[oauth.Static](name, md, cfg, redirectURI)
	case config.LifetimeExpiring:
		return discoveredSession[oauth.Expiring](name, md, cfg, redirectURI)
	case config.LifetimeRefresh, "":
		return discoveredSession[oauth.Refresh](name, md, cfg, redirectURI)
	default:
		return nil, fmt.Errorf("unknown lifetime %q", cfg.Lifetime)
	}
}

func discoveredSession[L oauth.Lifetime](name string, md *oauth.Metadata, cfg config.Config, redirectURI string) (session, error) {
	provider, err := oauth.ProviderFromMetadata[L](name, md)
	if err != nil {
		return nil, err
	}
	return newClientSession(provider, cfg, redirectURI)
}
