package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	urlScope string
	urlState string
)

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the authorization URL",
	Long: `Print the URL the resource owner must visit to grant access.

After approving, the provider redirects to the configured redirect URI with
a code parameter that 'authcode exchange' turns into a token.

Examples:
  authcode url --provider imgur --client-id abc
  authcode url --scope "repo read:user" --state 3f1c`,
	Args: cobra.NoArgs,
	RunE: runURL,
}

func init() {
	urlCmd.Flags().StringVar(&urlScope, "scope", "", "Scope to request (default from config)")
	urlCmd.Flags().StringVar(&urlState, "state", "", "Opaque state value echoed back in the redirect")
	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd, true)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd.Context(), cfg, cfg.RedirectURI)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sess.AuthURI(scopeFor(cmd, cfg, urlScope), urlState))
	return nil
}
