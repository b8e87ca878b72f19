package app

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	markerFileName = "first_run_completed"
	appName        = "clientsweep"
)

// GetAppConfigDir returns the path to the application's configuration directory.
func GetAppConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// IsFirstRun reports whether this is the first invocation on this
// machine, creating the marker file as a side effect. The caller uses
// it to surface the dry-run default to new operators of a destructive
// tool. Any filesystem trouble is treated as "not first run".
func IsFirstRun() bool {
	appConfigDir, err := GetAppConfigDir()
	if err != nil {
		slog.Debug("failed to resolve app config directory", slog.String("error", err.Error()))
		return false
	}

	markerFilePath := filepath.Join(appConfigDir, markerFileName)

	if _, err := os.Stat(markerFilePath); os.IsNotExist(err) {
		if err := os.MkdirAll(appConfigDir, 0755); err != nil {
			slog.Debug("failed to create app config directory", slog.String("path", appConfigDir), slog.String("error", err.Error()))
			return false
		}
		marker, err := os.Create(markerFilePath)
		if err != nil {
			slog.Debug("failed to create first run marker", slog.String("path", markerFilePath), slog.String("error", err.Error()))
			return false
		}
		_ = marker.Close()
		return true
	} else if err != nil {
		slog.Debug("failed to check first run marker", slog.String("path", markerFilePath), slog.String("error", err.Error()))
		return false
	}

	return false
}
