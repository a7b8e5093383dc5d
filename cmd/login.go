package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"authcode/internal/callback"
	"authcode/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// Login-specific flags
var (
	loginScope     string
	loginNoBrowser bool
)

// Replaced in tests.
var (
	openBrowser       = callback.OpenBrowser
	newCallbackServer = callback.NewServer
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run the browser authorization flow and print the token",
	Long: `Run the complete authorization code flow in the browser.

A loopback server is started on the configured callback port and used as
the redirect URI. The authorization URL is opened in the default browser,
the redirect is checked against a random state value and the code is
exchanged for a token.

Examples:
  authcode login --provider github --client-id abc
  authcode login --no-browser          # print the URL only
  authcode login -o json | jq -r .access_token`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginScope, "scope", "", "Scope to request (default from config)")
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd, true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	server := newCallbackServer(cfg.CallbackPort)
	redirectURI, err := server.Start(ctx)
	if err != nil {
		return err
	}
	defer server.Stop()

	sess, err := newSession(ctx, cfg, redirectURI)
	if err != nil {
		return err
	}

	state := uuid.NewString()
	authURL := sess.AuthURI(scopeFor(cmd, cfg, loginScope), state)

	if loginNoBrowser {
		fmt.Fprintf(cmd.ErrOrStderr(), "Open the following URL to authorize authcode:\n\n  %s\n\n", authURL)
	} else if err := openBrowser(authURL); err != nil {
		logging.Warn("Login", "Could not open browser: %v", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Open the following URL to authorize authcode:\n\n  %s\n\n", authURL)
	}

	result, err := waitForRedirect(ctx, cmd, server, sess.ProviderName())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("no authorization redirect received within %s", cfg.Timeout)
		}
		return err
	}

	if result.IsError() {
		return &AuthorizationError{Code: result.Error, Description: result.ErrorDescription}
	}
	if result.State != state {
		return errors.New("authorization redirect state does not match the request")
	}
	if result.Code == "" {
		return errors.New("authorization redirect carried no code")
	}

	token, err := sess.Exchange(ctx, result.Code)
	if err != nil {
		return err
	}

	status(cmd, "%s Logged in to %s\n", text.FgGreen.Sprint("✓"), sess.ProviderName())
	return printToken(cmd, token)
}

func waitForRedirect(ctx context.Context, cmd *cobra.Command, server *callback.Server, provider string) (*callback.Result, error) {
	if quiet {
		return server.WaitForCallback(ctx)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = fmt.Sprintf(" Waiting for authorization from %s...", provider)
	s.Start()
	defer s.Stop()

	result, err := server.WaitForCallback(ctx)
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint("Authorization was not completed") + "\n"
	}
	return result, err
}
