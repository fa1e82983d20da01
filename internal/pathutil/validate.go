// Package pathutil provides utilities for safe path handling. Manifest
// and history paths arrive from config files and MCP clients, so they
// are validated before any file operation.
package pathutil

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyPath = errors.New("path is empty")
	ErrNullBytes = errors.New("path contains null bytes")
)

// ValidatePath ensures a path is safe to open. It returns the cleaned
// path, with symlinks resolved when the target already exists so that
// symlink-based traversal is visible to the caller.
func ValidatePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	cleaned := filepath.Clean(path)

	if strings.Contains(cleaned, "\x00") {
		return "", ErrNullBytes
	}

	realPath, err := filepath.EvalSymlinks(cleaned)
	if err != nil {
		// The path may not exist yet (a history file before the first
		// publish); the cleaned path is still usable for creation.
		return cleaned, nil
	}

	return realPath, nil
}

// IsPathSafe reports whether a relative path stays inside the working
// directory after cleaning.
func IsPathSafe(path string) bool {
	if path == "" || strings.Contains(path, "\x00") {
		return false
	}

	cleaned := filepath.Clean(path)
	return !strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) && cleaned != ".."
}
