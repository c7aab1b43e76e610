package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessh"

// dataHome is the per-user base directory for application data. Relative
// XDG_DATA_HOME values are ignored, as the XDG base directory rules require.
func dataHome() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if d := os.Getenv("APPDATA"); d != "" {
			return d, nil
		}
	case "darwin":
	default:
		if d := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(d) {
			return d, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	}
	return filepath.Join(home, ".local", "share"), nil
}

// DatabaseDir returns the directory for the game database, creating it
// readable by the owner only.
func DatabaseDir() (string, error) {
	base, err := dataHome()
	if err != nil {
		return "", fmt.Errorf("locating data directory: %w", err)
	}
	dir := filepath.Join(base, appName, "games")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}
