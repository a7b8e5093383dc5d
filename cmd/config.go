package cmd

import (
	"fmt"

	"authcode/internal/config"
	"authcode/pkg/oauth"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file from the given flags",
	Long: `Write a configuration file from the current settings and flags.

The client secret is never written; keep it in the file by hand or export
AUTHCODE_CLIENT_SECRET.

Examples:
  authcode config init --provider imgur --client-id abc
  authcode config init --issuer https://accounts.example.com --client-id abc --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Replace an existing configuration file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _, err := configPath()
	if err != nil {
		return err
	}

	// The target of init does not have to exist yet.
	cfg, _, err := loadSettingsFrom(cmd, path, false, true)
	if err != nil {
		return err
	}
	cfg.ClientSecret = ""

	if err := config.SaveConfig(path, cfg, configForce); err != nil {
		return err
	}
	status(cmd, "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadSettings(cmd, false)
	if err != nil {
		return err
	}
	if cfg.ClientSecret != "" {
		cfg.ClientSecret = oauth.NewRedactedToken(cfg.ClientSecret).String()
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
	return nil
}
