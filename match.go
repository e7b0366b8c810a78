// Package pkgscan provides package archive inspection functionality.
// This file contains regexp-based file discovery over the extracted tree.
package pkgscan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jmgilman/go/fs/core"
)

// MatchCriteria holds the compiled filters applied during file discovery.
// Patterns are compiled once and applied as data; no filter expression is
// ever assembled from strings and evaluated.
type MatchCriteria struct {
	include      *regexp.Regexp
	excludeExt   *regexp.Regexp
	manifestName string
}

// compileCriteria builds MatchCriteria from the configured pattern strings.
// The include pattern matches anywhere in the reported path; the exclude
// pattern is anchored so it must describe the whole filename extension.
// Invalid expressions yield ErrInvalidPattern.
func compileCriteria(include, excludeExt, manifestName string) (*MatchCriteria, error) {
	criteria := &MatchCriteria{manifestName: manifestName}

	if include != "" {
		re, err := regexp.Compile(include)
		if err != nil {
			return nil, NewScanError("compile", include, ErrInvalidPattern)
		}
		criteria.include = re
	}

	if excludeExt != "" {
		re, err := regexp.Compile("^(?:" + excludeExt + ")$")
		if err != nil {
			return nil, NewScanError("compile", excludeExt, ErrInvalidPattern)
		}
		criteria.excludeExt = re
	}

	return criteria, nil
}

// matchFiles enumerates regular files under root and returns the paths
// satisfying the criteria, in walk order. Paths are reported relative to
// root with a leading "./", mirroring how downstream tooling consumes the
// descriptor.
//
// The manifest file is always excluded, regardless of pattern values.
func (c *MatchCriteria) matchFiles(fsys core.FS, root string) ([]string, error) {
	matched := []string{}

	err := fsys.Walk(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk failed at %s: %w", path, err)
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if d.Name() == c.manifestName {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, relErr)
		}
		candidate := "./" + filepath.ToSlash(rel)

		if c.include != nil && !c.include.MatchString(candidate) {
			return nil
		}
		if c.excludeExt != nil {
			ext := strings.TrimPrefix(filepath.Ext(candidate), ".")
			if c.excludeExt.MatchString(ext) {
				return nil
			}
		}

		matched = append(matched, candidate)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate files under %s: %w", root, err)
	}

	return matched, nil
}
