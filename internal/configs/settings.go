package configs

import (
	"os"
	"path/filepath"
)

// UserSettings locates the per-user configuration directory. It is
// independent of which store directory a command targets.
type UserSettings struct {
	UserConfigsPath string
}

// UserZeroEnvSettings is resolved once at startup. Tests may point it at a
// temporary directory.
var UserZeroEnvSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fall back to the working directory rather than refusing to start;
		// user settings are a convenience, not a requirement.
		configDir = "."
	}

	UserZeroEnvSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "zeroenv"),
	}
}
