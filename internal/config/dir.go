// Package config resolves pmdocs configuration from flags, environment,
// .env files and YAML config files.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the pmdocs configuration directory.
//
// Resolution:
//   - $PMDOCS_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/pmdocs if set
//   - %AppData%/pmdocs on Windows
//   - ~/.config/pmdocs on macOS and Linux
func Dir() string {
	if dir := os.Getenv("PMDOCS_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pmdocs")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "pmdocs")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pmdocs")
}
