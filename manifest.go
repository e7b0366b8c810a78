// Package pkgscan provides package archive inspection functionality.
// This file contains package manifest discovery and parsing.
package pkgscan

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-ini/ini"
	"github.com/jmgilman/go/fs/core"
)

// manifestVersionKey is the manifest entry holding the declared package
// version.
const manifestVersionKey = "package_version"

// findManifest walks the tree rooted at root looking for a file whose base
// name equals name. Returns the first match in walk order, or the empty
// string when no manifest exists. Absence is not an error.
func findManifest(fsys core.FS, root, name string) (string, error) {
	var found string
	err := fsys.Walk(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk failed at %s: %w", path, err)
		}
		if found != "" {
			return fs.SkipAll
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search for manifest under %s: %w", root, err)
	}
	return found, nil
}

// readManifestVersion parses the manifest at path and returns the declared
// package version, trimmed of surrounding whitespace. Returns the empty
// string when the version key is absent.
//
// Manifests are line-oriented key=value files; they are parsed as INI
// documents with all keys in the default section.
func readManifestVersion(fsys core.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return strings.TrimSpace(cfg.Section("").Key(manifestVersionKey).String()), nil
}
