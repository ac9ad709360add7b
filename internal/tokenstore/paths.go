package tokenstore

import (
	"os"
	"path/filepath"
)

// xdgDataHome returns the XDG data home or a default fallback.
func xdgDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the default location of the credentials database.
func DefaultDBPath() string {
	return filepath.Join(xdgDataHome(), "twelveweeks", "credentials.db")
}
