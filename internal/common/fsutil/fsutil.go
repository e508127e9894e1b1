// Package fsutil resolves model artifact paths from configuration.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest), nil
	}
	// ~user/... is not supported
	return path, nil
}

// CheckArtifact expands path and verifies it names a regular file. Used as
// a startup preflight so a misconfigured artifact fails before the service
// binds its port.
func CheckArtifact(path string) (string, error) {
	p, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("model artifact: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("model artifact %s is a directory", p)
	}
	return p, nil
}
