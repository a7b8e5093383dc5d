package cmd

import (
	"authcode/internal/config"

	"github.com/spf13/cobra"
)

// configPath returns the file to load and whether it must exist.
func configPath() (string, bool, error) {
	if cfgFile != "" {
		return cfgFile, true, nil
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	return path, false, nil
}

// loadSettings loads the configuration file and applies the global override
// flags. The result is validated unless validate is false.
func loadSettings(cmd *cobra.Command, validate bool) (config.Config, string, error) {
	path, required, err := configPath()
	if err != nil {
		return config.Config{}, "", err
	}
	return loadSettingsFrom(cmd, path, required, validate)
}

func loadSettingsFrom(cmd *cobra.Command, path string, required, validate bool) (config.Config, string, error) {
	cfg, err := config.LoadConfig(path, required)
	if err != nil {
		return config.Config{}, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = providerFlag
		cfg.Issuer = ""
	}
	if flags.Changed("issuer") {
		cfg.Issuer = issuerFlag
		cfg.Provider = ""
		if cfg.Lifetime == "" {
			cfg.Lifetime = config.LifetimeRefresh
		}
	}
	if flags.Changed("client-id") {
		cfg.ClientID = clientIDFlag
	}
	if flags.Changed("redirect-uri") {
		cfg.RedirectURI = redirectURIFlag
	}

	if validate {
		if err := config.Validated(cfg, path, builtinProviderNames()); err != nil {
			return config.Config{}, "", err
		}
	}

	return cfg, path, nil
}

// scopeFor returns the --scope flag when given, else the configured scope.
func scopeFor(cmd *cobra.Command, cfg config.Config, flagValue string) string {
	if cmd.Flags().Changed("scope") {
		return flagValue
	}
	return cfg.Scope
}
