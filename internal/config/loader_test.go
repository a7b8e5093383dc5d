package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfigPath(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config", "authcode", "config.yaml"), path)

	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = DefaultConfigPath()
	assert.Error(t, err)
}

func TestLoadConfig_MissingOptionalFile(t *testing.T) {
	t.Setenv(ClientSecretEnv, "")
	os.Unsetenv(ClientSecretEnv)

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig_MissingRequiredFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.Error(t, err)

	var configErr *ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "io", configErr.ErrorType)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv(ClientSecretEnv, "")
	os.Unsetenv(ClientSecretEnv)

	path := createTempConfigFile(t, `
provider: imgur
clientId: my-client
clientSecret: from-file
scope: read
timeout: 90s
`)

	config, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "imgur", config.Provider)
	assert.Equal(t, "my-client", config.ClientID)
	assert.Equal(t, "from-file", config.ClientSecret)
	assert.Equal(t, "read", config.Scope)
	assert.Equal(t, 90*time.Second, config.Timeout)
	assert.Equal(t, DefaultCallbackPort, config.CallbackPort, "unset port falls back to default")
	assert.Empty(t, config.Lifetime, "lifetime only defaults for issuers")
}

func TestLoadConfig_IssuerDefaultsLifetime(t *testing.T) {
	path := createTempConfigFile(t, `
issuer: https://accounts.example.com
clientId: my-client
`)

	config, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, LifetimeRefresh, config.Lifetime)
}

func TestLoadConfig_EnvSecretOverridesFile(t *testing.T) {
	t.Setenv(ClientSecretEnv, "from-env")

	path := createTempConfigFile(t, `
provider: github
clientId: my-client
clientSecret: from-file
`)

	config, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.ClientSecret)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := createTempConfigFile(t, "provider: [unterminated\n")

	_, err := LoadConfig(path, true)
	require.Error(t, err)

	var configErr *ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "parse", configErr.ErrorType)
	assert.Equal(t, path, configErr.FilePath)
	assert.Contains(t, configErr.DetailedError(), "Suggestions:")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv(ClientSecretEnv, "")
	os.Unsetenv(ClientSecretEnv)

	path := filepath.Join(t.TempDir(), "nested", configFileName)
	want := Config{
		Provider:     "google-installed",
		ClientID:     "id",
		ClientSecret: "secret",
		CallbackPort: 9000,
		Timeout:      2 * time.Minute,
	}

	require.NoError(t, SaveConfig(path, want, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveConfig_Overwrite(t *testing.T) {
	path := createTempConfigFile(t, "provider: github\n")

	err := SaveConfig(path, Config{Provider: "imgur"}, false)
	require.Error(t, err)
	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))

	require.NoError(t, SaveConfig(path, Config{Provider: "imgur"}, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider: imgur")
}
