package cmd

import (
	"fmt"

	"authcode/internal/formatting"

	"github.com/spf13/cobra"
)

// printToken writes token to stdout in the --output format.
func printToken(cmd *cobra.Command, token formatting.TokenView) error {
	format, err := formatting.ParseOutputFormat(outputFormat)
	if err != nil {
		return err
	}

	out, err := formatting.New(format).FormatToken(token)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// status writes progress messages to stderr unless --quiet is set.
func status(cmd *cobra.Command, format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}
