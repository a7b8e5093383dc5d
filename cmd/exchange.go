package cmd

import (
	"github.com/spf13/cobra"
)

// exchangeCmd represents the exchange command
var exchangeCmd = &cobra.Command{
	Use:   "exchange <code>",
	Short: "Exchange an authorization code for a token",
	Long: `Exchange an authorization code for a bearer token and print it.

The redirect URI must match the one used to obtain the code.

Exit codes:
  2  the provider rejected the code (for example invalid_grant)
  3  the token endpoint was unreachable or its response was malformed`,
	Args: cobra.ExactArgs(1),
	RunE: runExchange,
}

func init() {
	rootCmd.AddCommand(exchangeCmd)
}

func runExchange(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd, true)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd.Context(), cfg, cfg.RedirectURI)
	if err != nil {
		return err
	}

	token, err := sess.Exchange(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printToken(cmd, token)
}
