package config

import "time"

// Lifetime names accepted for discovered providers.
const (
	LifetimeStatic   = "static"
	LifetimeExpiring = "expiring"
	LifetimeRefresh  = "refresh"
)

// Config is the top-level configuration structure for authcode.
type Config struct {
	// Provider names a built-in provider. Mutually exclusive with Issuer.
	Provider string `yaml:"provider,omitempty"`

	// Issuer is an authorization server whose metadata is discovered.
	Issuer string `yaml:"issuer,omitempty"`

	// Lifetime is the token lifetime of a discovered provider.
	Lifetime string `yaml:"lifetime,omitempty"`

	ClientID     string `yaml:"clientId,omitempty"`
	ClientSecret string `yaml:"clientSecret,omitempty"`

	// RedirectURI is sent by url and exchange. login always uses its own
	// loopback address.
	RedirectURI string `yaml:"redirectUri,omitempty"`

	Scope        string        `yaml:"scope,omitempty"`
	CallbackPort int           `yaml:"callbackPort,omitempty"` // Port for the login callback server (default: 8085)
	Timeout      time.Duration `yaml:"timeout,omitempty"`      // How long login waits for the browser (default: 5m)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		CallbackPort: DefaultCallbackPort,
		Timeout:      DefaultTimeout,
	}
}

const (
	// DefaultCallbackPort is the loopback port login listens on.
	DefaultCallbackPort = 8085

	// DefaultTimeout bounds the interactive login.
	DefaultTimeout = 5 * time.Minute
)

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Issuer != "" && c.Lifetime == "" {
		c.Lifetime = LifetimeRefresh
	}
	if c.CallbackPort == 0 {
		c.CallbackPort = defaults.CallbackPort
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
}
