package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UserConfig holds per-user preferences and identity.
type UserConfig struct {
	// InstallUUID identifies this installation in audit log entries.
	InstallUUID string `toml:"install_uuid"`

	// DefaultTier is used by init when --tier is not given. Empty means
	// standard.
	DefaultTier string `toml:"default_tier,omitempty"`
}

// LoadUserConfig loads the user configuration, returning an empty config if
// the file does not exist yet.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserZeroEnvSettings.UserConfigsPath, "config.toml")

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserZeroEnvSettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// EnsureUserConfig ensures the user configuration exists and has an install
// UUID, generating and persisting one on first use.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}

	if config.InstallUUID == "" {
		config.InstallUUID = uuid.New().String()
		if err := SaveUserConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}
