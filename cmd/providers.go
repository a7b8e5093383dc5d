package cmd

import (
	"fmt"

	"authcode/internal/config"
	"authcode/internal/formatting"
	"authcode/pkg/oauth"

	"github.com/spf13/cobra"
)

// builtinProviderNames lists the names accepted by --provider.
func builtinProviderNames() []string {
	return []string{oauth.GitHub.Name, oauth.GoogleWeb.Name, oauth.GoogleInstalled.Name, oauth.Imgur.Name}
}

func newBuiltinSession(cfg config.Config, redirectURI string) (session, error) {
	switch cfg.Provider {
	case oauth.GitHub.Name:
		return newClientSession(oauth.GitHub, cfg, redirectURI)
	case oauth.GoogleWeb.Name:
		return newClientSession(oauth.GoogleWeb, cfg, redirectURI)
	case oauth.GoogleInstalled.Name:
		return newClientSession(oauth.GoogleInstalled, cfg, redirectURI)
	case oauth.Imgur.Name:
		return newClientSession(oauth.Imgur, cfg, redirectURI)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func providerView[L oauth.Lifetime](p oauth.Provider[L]) formatting.ProviderView {
	return formatting.ProviderView{
		Name:              p.Name,
		Lifetime:          lifetimeName[L](),
		AuthURI:           p.AuthURI,
		TokenURI:          p.TokenURI,
		CredentialsInBody: p.CredentialsInBody,
	}
}

// providersCmd represents the providers command
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the built-in providers",
	Long: `List the built-in providers with their token lifetime and endpoints.

A static lifetime never expires, an expiring one cannot be renewed and a
refresh lifetime carries a refresh token usable with 'authcode refresh'.`,
	Args: cobra.NoArgs,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseOutputFormat(outputFormat)
	if err != nil {
		return err
	}

	views := []formatting.ProviderView{
		providerView(oauth.GitHub),
		providerView(oauth.GoogleWeb),
		providerView(oauth.GoogleInstalled),
		providerView(oauth.Imgur),
	}

	out, err := formatting.New(format).FormatProviders(views)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
