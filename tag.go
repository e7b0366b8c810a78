// Package pkgscan provides package archive inspection functionality.
// This file contains artifact tag resolution.
package pkgscan

import (
	"path/filepath"
	"strings"
)

// DeriveTag computes the artifact tag implied by an archive filename.
// The base name is stripped of its compressed-tar suffix:
//
//	app-1.0.tar.gz -> app-1.0
//	app-1.0.tgz    -> app-1.0
//
// Names without a recognized suffix are returned unchanged. DeriveTag is
// the fallback used when the extracted tree carries no package manifest.
func DeriveTag(archivePath string) string {
	base := filepath.Base(archivePath)
	switch {
	case strings.HasSuffix(base, ".tgz"):
		return strings.TrimSuffix(base, ".tgz")
	case strings.HasSuffix(base, ".gz"):
		return strings.TrimSuffix(strings.TrimSuffix(base, ".gz"), ".tar")
	default:
		return base
	}
}

// resolveTag determines the artifact tag for a scan. A version declared in
// the manifest takes precedence; otherwise the tag is derived from the
// archive filename. Manifest absence is a fallback trigger, never an error.
func resolveTag(manifestVersion, archivePath string) string {
	if manifestVersion != "" {
		return manifestVersion
	}
	return DeriveTag(archivePath)
}
