package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"authcode/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/authcode"
	configFileName = "config.yaml"

	// ClientSecretEnv overrides the clientSecret from the file.
	ClientSecretEnv = "AUTHCODE_CLIENT_SECRET"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultConfigPath returns ~/.config/authcode/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadConfig loads the configuration file at path. When required is false a
// missing file yields the defaults; when true it is an error. The client
// secret environment variable is applied last.
func LoadConfig(path string, required bool) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		config = Config{}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, &ConfigurationError{
				FilePath:  path,
				ErrorType: "parse",
				Message:   err.Error(),
				Suggestions: []string{
					"Check the YAML syntax of the file",
					"Durations such as timeout use Go syntax, e.g. 90s or 5m",
				},
				Err: err,
			}
		}
		config.applyDefaults()
		logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	case errors.Is(err, os.ErrNotExist) && !required:
		logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", path)
	default:
		return Config{}, &ConfigurationError{
			FilePath:  path,
			ErrorType: "io",
			Message:   err.Error(),
			Err:       err,
		}
	}

	if secret, ok := os.LookupEnv(ClientSecretEnv); ok {
		config.ClientSecret = secret
		logging.Debug("ConfigLoader", "Using client secret from %s", ClientSecretEnv)
	}

	return config, nil
}

// Validated wraps Validate's result in a ConfigurationError for path.
func Validated(config Config, path string, knownProviders []string) error {
	err := config.Validate(knownProviders)
	if err == nil {
		return nil
	}
	return &ConfigurationError{
		FilePath:  path,
		ErrorType: "validation",
		Message:   err.Error(),
		Suggestions: []string{
			fmt.Sprintf("Edit %s or pass the value as a flag", path),
			fmt.Sprintf("Supply the client secret through %s", ClientSecretEnv),
		},
		Err: err,
	}
}
