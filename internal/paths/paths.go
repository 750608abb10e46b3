// Package paths holds path display helpers and the atomic file writer.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CanonicalizePath converts a path to a base-relative path with forward slashes.
// - Resolves symlinks when the path exists
// - Falls back to the cleaned input when it cannot be made relative
func CanonicalizePath(path string, base string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		// Missing leaf: resolve the parent so both sides agree on symlinks.
		if dir, derr := filepath.EvalSymlinks(filepath.Dir(path)); derr == nil {
			resolved = filepath.Join(dir, filepath.Base(path))
		} else {
			resolved = path
		}
	}
	baseResolved, err := filepath.EvalSymlinks(base)
	if err != nil {
		baseResolved = base
	}

	absPath, err1 := filepath.Abs(resolved)
	absBase, err2 := filepath.Abs(baseResolved)
	if err1 != nil || err2 != nil {
		return NormalizePath(filepath.Clean(path))
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return NormalizePath(filepath.Clean(path))
	}
	return NormalizePath(rel)
}

// IsWithin reports whether path is inside base.
func IsWithin(path string, base string) bool {
	rel := CanonicalizePath(path, base)
	return rel != ".." && !strings.HasPrefix(rel, "../") && !filepath.IsAbs(rel)
}

// NormalizePath converts backslashes to forward slashes
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// Display returns path relative to the working directory when it lies
// inside it, otherwise the cleaned path.
func Display(path string) string {
	wd, err := os.Getwd()
	if err != nil || !IsWithin(path, wd) {
		return NormalizePath(filepath.Clean(path))
	}
	return CanonicalizePath(path, wd)
}

// WriteFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
