package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ and $VAR references in a user-supplied path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return os.ExpandEnv(path)
}

// ConfigDir is where config.yaml lives: $XDG_CONFIG_HOME/ledger or ~/.config/ledger.
func ConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir holds the database and its snapshots: $XDG_DATA_HOME/ledger or ~/.local/share/ledger.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// DefaultDatabasePath is used when database.path is unset.
func DefaultDatabasePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName+".db"), nil
}

// resolvePath expands value, or falls back to def when value is blank.
func resolvePath(value string, def func() (string, error)) (string, error) {
	if strings.TrimSpace(value) != "" {
		return filepath.Clean(ExpandPath(value)), nil
	}
	return def()
}

func xdgDir(env, homeRel string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, homeRel, AppName), nil
}
