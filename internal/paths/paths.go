// Package paths resolves the directories and files tasktree reads.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// WorkingDir returns the current directory with symlinks resolved.
func WorkingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return dir, nil
	}
	return resolved, nil
}

// DefaultConfigDir returns the global tasktree configuration directory.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "tasktree"), nil
}

// ResolveWithDefault returns override when set, otherwise the result of defaultFn.
func ResolveWithDefault(override string, defaultFn func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return defaultFn()
}

// Absolute resolves path against base unless it is already absolute.
func Absolute(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
