package source

import (
	"path/filepath"
	"strings"
)

// AbsolutePath returns a cleaned absolute path with forward slashes.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return cleanPath(abs), nil
}

// RelativePath returns p relative to baseDir, or the absolute path when p lies outside baseDir.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return cleanPath(abs), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cleanPath(abs), nil
	}
	return cleanPath(rel), nil
}

// BaseName returns the last path element.
func BaseName(p string) string {
	return filepath.Base(p)
}

// cleanPath gives paths one form across platforms, so diffs and diagnostics agree.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
