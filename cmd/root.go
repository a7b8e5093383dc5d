package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"authcode/pkg/logging"
	"authcode/pkg/oauth"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (invalid arguments, configuration, discovery).
	ExitCodeError = 1
	// ExitCodeRejected indicates the provider or the user refused the request.
	ExitCodeRejected = 2
	// ExitCodeBadResponse indicates the token endpoint could not be reached or
	// answered with something that is not a valid token response.
	ExitCodeBadResponse = 3
)

// Global flags
var (
	cfgFile      string
	debug        bool
	quiet        bool
	outputFormat string

	providerFlag    string
	issuerFlag      string
	clientIDFlag    string
	redirectURIFlag string
)

// rootCmd represents the base command for the authcode application.
var rootCmd = &cobra.Command{
	Use:   "authcode",
	Short: "Obtain OAuth 2.0 tokens with the authorization code grant",
	Long: `authcode walks through the OAuth 2.0 authorization code grant against
GitHub, Google, Imgur or any authorization server that publishes RFC 8414
or OpenID Connect metadata.

It prints authorization URLs, exchanges codes for bearer tokens, refreshes
expired tokens and can run the whole browser login on a loopback redirect.
Tokens are printed, never stored.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if debug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// Interrupts cancel the command context so a pending login stops cleanly.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "authcode version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// AuthorizationError is an error returned to the redirect URI instead of a
// code, typically access_denied when the user declines.
type AuthorizationError struct {
	Code        string
	Description string
}

func (e *AuthorizationError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("authorization failed: %s", e.Code)
	}
	return fmt.Sprintf("authorization failed: %s: %s", e.Code, e.Description)
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		return ExitCodeRejected
	}

	if kind, ok := oauth.ErrorKind(err); ok {
		switch kind {
		case oauth.KindOAuth2:
			return ExitCodeRejected
		case oauth.KindTransport, oauth.KindJSON, oauth.KindParse:
			return ExitCodeBadResponse
		}
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/authcode/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, yaml)")

	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Built-in provider (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&issuerFlag, "issuer", "", "Authorization server to discover (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&clientIDFlag, "client-id", "", "OAuth client ID (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&redirectURIFlag, "redirect-uri", "", "Redirect URI for url and exchange (overrides the config file)")

	rootCmd.AddCommand(newVersionCmd())
}
