// Package validate provides path validation for archive extraction.
// It rejects archive entry paths that could escape the extraction root or
// otherwise compromise the host filesystem.
package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EntryValidator validates archive entry paths before extraction.
// It detects path traversal attempts, absolute paths, and problematic
// characters in entry names.
type EntryValidator struct {
	// AllowHiddenFiles determines whether entries with a dot-prefixed
	// path component are allowed.
	AllowHiddenFiles bool

	// RootPath is the extraction root directory used to resolve and check
	// symlink targets.
	RootPath string
}

// NewEntryValidator creates an EntryValidator with default settings:
// hidden files rejected, no root path set.
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{}
}

// ValidatePath checks an archive entry path for security issues.
// Returns nil if the path is safe to extract, or an error describing the
// violation.
func (v *EntryValidator) ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty entry path")
	}

	if isAbsolute(path) {
		return fmt.Errorf("absolute entry path not allowed: %s", path)
	}

	if err := checkTraversal(path); err != nil {
		return err
	}

	if err := checkCharacters(path); err != nil {
		return err
	}

	if !v.AllowHiddenFiles && hasHiddenComponent(path) {
		return fmt.Errorf("hidden entry not allowed: %s", path)
	}

	return nil
}

// ValidateSymlink checks that a symlink target cannot escape the extraction
// root once the link is resolved relative to its own directory.
func (v *EntryValidator) ValidateSymlink(linkPath, target string) error {
	if v.RootPath == "" {
		return fmt.Errorf("root path not set for symlink validation")
	}

	if isAbsolute(target) {
		return fmt.Errorf("symlink target is absolute: %s -> %s", linkPath, target)
	}

	if err := checkTraversal(target); err != nil {
		return fmt.Errorf("symlink target unsafe: %s -> %s: %w", linkPath, target, err)
	}

	// Resolve the target relative to the link's directory and confirm the
	// result stays under the root.
	resolved := filepath.Clean(filepath.Join(filepath.Dir(linkPath), target))
	rootAbs, err := filepath.Abs(v.RootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	targetAbs, err := filepath.Abs(filepath.Join(v.RootPath, resolved))
	if err != nil {
		return fmt.Errorf("failed to resolve symlink target: %w", err)
	}
	if targetAbs != rootAbs && !strings.HasPrefix(targetAbs, rootAbs+string(filepath.Separator)) {
		return fmt.Errorf("symlink target escapes extraction root: %s -> %s", linkPath, target)
	}

	return nil
}

// checkTraversal rejects paths containing a ".." component in either slash
// convention, including paths that only escape after cleaning.
func checkTraversal(path string) error {
	if strings.HasPrefix(filepath.Clean(path), "..") {
		return fmt.Errorf("path traversal detected: %s", path)
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	}) {
		if part == ".." {
			return fmt.Errorf("path traversal detected: %s", path)
		}
	}

	return nil
}

// checkCharacters rejects NUL bytes and control characters in entry paths.
func checkCharacters(path string) error {
	for _, r := range path {
		if r == 0 {
			return fmt.Errorf("NUL byte in entry path: %q", path)
		}
		if r < 32 && r != '\t' {
			return fmt.Errorf("control character in entry path: %q (U+%04X)", path, r)
		}
	}
	return nil
}

// hasHiddenComponent reports whether any path component starts with a dot.
func hasHiddenComponent(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}

// isAbsolute detects absolute paths on all platforms, including Windows
// drive letters and UNC paths that may appear in archives built elsewhere.
func isAbsolute(path string) bool {
	if filepath.IsAbs(path) {
		return true
	}

	// Windows drive letters (C:\ or C:/)
	if len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		drive := path[0]
		if (drive >= 'A' && drive <= 'Z') || (drive >= 'a' && drive <= 'z') {
			return true
		}
	}

	// UNC paths (\\server\share)
	return strings.HasPrefix(path, `\\`)
}
