package config

import (
	"os"
	"path/filepath"
)

const DefaultHomePath = "~/satchel"

// HomePath returns the default mount folder from SATCHEL_HOME,
// falling back to DefaultHomePath.
func HomePath() string {
	if env := os.Getenv("SATCHEL_HOME"); env != "" {
		return env
	}
	return DefaultHomePath
}

// DataDir returns the directory holding persisted registry state.
// SATCHEL_DATA_DIR overrides; otherwise the XDG data directory is used.
func DataDir() string {
	if env := os.Getenv("SATCHEL_DATA_DIR"); env != "" {
		return env
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "satchel")
}

// RegistryPath returns the path of the persisted registry file.
func RegistryPath() string {
	return filepath.Join(DataDir(), "registry.json")
}
