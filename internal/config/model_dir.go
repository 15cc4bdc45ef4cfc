package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultModelDir is the fallback directory within the user's home.
const defaultModelDir = ".config/librisk/model"

// ResolveModelDir returns the directory the model artifacts are read from.
// An absolute configured path is used as is. A relative one is tried against
// the working directory first, then inside ~/.config/librisk/model.
func ResolveModelDir(configured string) (string, error) {
	if filepath.IsAbs(configured) {
		return configured, nil
	}

	if configured != "" {
		if info, err := os.Stat(configured); err == nil && info.IsDir() {
			abs, err := filepath.Abs(configured)
			if err != nil {
				return "", fmt.Errorf("failed to resolve model directory '%s': %w", configured, err)
			}
			return abs, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(homeDir, defaultModelDir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("model directory not found: tried '%s' and '%s'", configured, dir)
	}
	return dir, nil
}
