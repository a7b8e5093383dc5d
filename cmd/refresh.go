package cmd

import (
	"errors"
	"fmt"

	"authcode/pkg/oauth"

	"github.com/spf13/cobra"
)

var refreshScope string

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh <refresh-token>",
	Short: "Obtain a new access token with a refresh token",
	Long: `Obtain a new access token with a refresh token.

Only providers with a refresh lifetime support this. When the provider does
not return a new refresh token, the one given is printed again.`,
	Args: cobra.ExactArgs(1),
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshScope, "scope", "", "Narrower scope to request (default: the original grant)")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd, true)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd.Context(), cfg, cfg.RedirectURI)
	if err != nil {
		return err
	}

	// Unlike url and login, an unset --scope is sent as no scope at all.
	token, err := sess.Refresh(cmd.Context(), args[0], refreshScope)
	if errors.Is(err, oauth.ErrNotRefreshable) {
		return fmt.Errorf("provider %s issues %s tokens: %w", sess.ProviderName(), sess.Lifetime(), err)
	}
	if err != nil {
		return err
	}
	return printToken(cmd, token)
}
