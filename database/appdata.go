package database

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EnvDataDir overrides where scout keeps its local data.
const EnvDataDir = "SCOUT_DATA_DIR"

// GetAppDataPath returns $SCOUT_DATA_DIR if set, otherwise appName under
// the user's config directory: `~/.config/scout`, `%AppData%\scout` or
// `~/Library/Application Support/scout`.
func GetAppDataPath(appName string) (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "finding user config directory")
	}
	return filepath.Join(configDir, appName), nil
}
