package config

import (
	"fmt"
	"os"
	"path/filepath"

	"authcode/pkg/logging"

	"gopkg.in/yaml.v3"
)

// SaveConfig writes config to path, creating the parent directory. The file
// is written with mode 0600 because it may hold the client secret. An
// existing file is only replaced when overwrite is true.
func SaveConfig(path string, config Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return &ConfigurationError{
				FilePath:    path,
				ErrorType:   "io",
				Message:     "file already exists",
				Suggestions: []string{"Pass --force to replace it"},
			}
		}
	}

	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	// Write a sibling file and rename it into place.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	logging.Info("ConfigStorage", "Saved configuration to %s", path)
	return nil
}
