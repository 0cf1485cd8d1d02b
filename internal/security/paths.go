// Package security keeps files derived from model names inside the run's
// output directory. Model names and subfolder paths can come from a restored
// backup, so they are treated as untrusted.
package security

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// resolve returns the absolute form of path with symlinks evaluated through
// its deepest existing ancestor.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	for dir := abs; ; {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			rel, _ := filepath.Rel(dir, abs)
			return filepath.Join(resolved, rel), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to resolve symlinks of %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

// ValidatePathWithinDirectory checks that filePath resolves inside safeDir,
// following symlinks in any existing part of either path. Neither needs to
// exist yet.
func ValidatePathWithinDirectory(filePath, safeDir string) error {
	path, err := resolve(filePath)
	if err != nil {
		return err
	}
	dir, err := resolve(safeDir)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return fmt.Errorf("path is outside safe directory: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("path traversal detected: %s attempts to escape %s", filePath, safeDir)
	}
	return nil
}

// SanitizeSegment makes one path segment safe. Characters other than ASCII
// letters, digits and . _ - = + become a single underscore; leading and
// trailing dots and underscores are trimmed and the result is capped at 128
// bytes. An empty result becomes "unknown".
func SanitizeSegment(s string) string {
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.', r == '-', r == '=', r == '+':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}

// ArtifactPath maps a model's slash-separated subfolder path to a file under
// root with extension ext, sanitizing every segment.
func ArtifactPath(root, subfolder, ext string) (string, error) {
	parts := []string{root}
	for _, seg := range strings.Split(subfolder, "/") {
		if seg != "" {
			parts = append(parts, SanitizeSegment(seg))
		}
	}
	if len(parts) == 1 {
		return "", fmt.Errorf("empty artifact path under %s", root)
	}
	file := filepath.Join(parts...) + ext
	if err := ValidatePathWithinDirectory(file, root); err != nil {
		return "", err
	}
	return file, nil
}
