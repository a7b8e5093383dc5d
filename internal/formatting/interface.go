// Package formatting renders tokens and provider listings for the CLI in
// table, JSON or YAML form.
package formatting

import (
	"fmt"
	"strings"
	"time"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// ParseOutputFormat validates the value of an --output flag.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// TokenView is the printable form of a token.
type TokenView struct {
	Provider     string    `json:"provider" yaml:"provider"`
	Lifetime     string    `json:"lifetime" yaml:"lifetime"`
	TokenType    string    `json:"token_type" yaml:"token_type"`
	AccessToken  string    `json:"access_token" yaml:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Scope        string    `json:"scope,omitempty" yaml:"scope,omitempty"`
	IDToken      string    `json:"id_token,omitempty" yaml:"id_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitzero" yaml:"expiry,omitempty"`
}

// ProviderView is one row of the provider listing.
type ProviderView struct {
	Name              string `json:"name" yaml:"name"`
	Lifetime          string `json:"lifetime" yaml:"lifetime"`
	AuthURI           string `json:"auth_uri" yaml:"auth_uri"`
	TokenURI          string `json:"token_uri" yaml:"token_uri"`
	CredentialsInBody bool   `json:"credentials_in_body" yaml:"credentials_in_body"`
}

// Formatter renders CLI output.
type Formatter interface {
	FormatToken(token TokenView) (string, error)
	FormatProviders(providers []ProviderView) (string, error)
}

// New returns the Formatter for format.
func New(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return JSONFormatter{}
	case FormatYAML:
		return YAMLFormatter{}
	default:
		return TableFormatter{}
	}
}
