// Package util provides shared path helpers for agentdeck.
package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDir returns the user's home directory.
// Fails when the OS cannot determine it (e.g. HOME unset on Unix).
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return home, nil
}

// OpenCodeConfigRoot returns the global opencode configuration directory:
// $XDG_CONFIG_HOME/opencode when set, otherwise ~/.config/opencode.
func OpenCodeConfigRoot() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "opencode"), nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve opencode config directory: %w", err)
	}
	return filepath.Join(home, ".config", "opencode"), nil
}

// AgentdeckDir returns agentdeck's own data directory (~/.agentdeck).
func AgentdeckDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".agentdeck"), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
// Paths without a ~ prefix are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		home, err := HomeDir()
		if err != nil {
			return path
		}
		return home
	}
	if len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		home, err := HomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
