// Package pkgscan provides package archive inspection functionality.
// This file contains functional options for configuration.
package pkgscan

import (
	"github.com/jmgilman/go/fs/core"
)

// ScanOptions contains configuration options for the Scanner.
type ScanOptions struct {
	// FS provides filesystem operations for extraction, matching, and
	// report handling. If nil, a default OS-backed filesystem is used.
	FS core.FS

	// WorkDir is the scratch directory the archive is extracted into.
	// If empty, a uniquely named temporary directory is created per scan.
	WorkDir string

	// KeepWorkDir controls whether the extraction directory survives the
	// scan. When true (the default), the extracted tree is left in place so
	// callers can inspect the files referenced by the report. When false,
	// the directory is removed once the scan completes.
	//
	// A scanner-created temporary directory is always removed when the scan
	// fails, regardless of this setting.
	KeepWorkDir bool

	// ManifestName is the exact base name of the package manifest searched
	// for inside the extracted tree. Defaults to "package_manifest.ini".
	ManifestName string

	// IncludePattern is an optional regular expression applied to each
	// discovered file path. When empty, all files are candidates.
	IncludePattern string

	// ExcludeExtension is an optional regular expression applied to the
	// filename extension (without the leading dot) of each candidate.
	// Candidates whose extension matches are removed from the results.
	ExcludeExtension string

	// MaxFiles is the maximum number of entries allowed in the archive.
	// Set to 0 for unlimited (not recommended for untrusted archives).
	MaxFiles int

	// MaxSize is the maximum total uncompressed size of all files combined.
	// Set to 0 for unlimited (not recommended for untrusted archives).
	MaxSize int64

	// MaxFileSize is the maximum size allowed for any individual file.
	// Set to 0 for unlimited (not recommended for untrusted archives).
	MaxFileSize int64

	// AllowHiddenFiles determines whether hidden entries (starting with .)
	// are allowed in the archive.
	AllowHiddenFiles bool
}

// ScanOption is a functional option for configuring the Scanner.
type ScanOption func(*ScanOptions)

// DefaultScanOptions returns the default scan options.
func DefaultScanOptions() *ScanOptions {
	return &ScanOptions{
		FS:               nil, // Filled by constructor if unset
		WorkDir:          "",  // Fresh temporary directory per scan
		KeepWorkDir:      true,
		ManifestName:     "package_manifest.ini",
		IncludePattern:   "",
		ExcludeExtension: "",
		MaxFiles:         10000,
		MaxSize:          1 * 1024 * 1024 * 1024, // 1GB
		MaxFileSize:      100 * 1024 * 1024,      // 100MB
		AllowHiddenFiles: false,
	}
}

// WithFilesystem injects a custom filesystem implementation used by the
// scanner. This is primarily used for testing with in-memory filesystems.
func WithFilesystem(fsys core.FS) ScanOption {
	return func(opts *ScanOptions) {
		opts.FS = fsys
	}
}

// WithWorkDir pins the extraction scratch directory instead of creating a
// temporary directory per scan. The directory is created if it does not
// exist. Concurrent scans sharing a pinned directory are not supported.
func WithWorkDir(dir string) ScanOption {
	return func(opts *ScanOptions) {
		opts.WorkDir = dir
	}
}

// WithKeepWorkDir controls whether the extraction directory is preserved
// after a successful scan. Preserving it (the default) keeps the paths in
// the report resolvable on disk.
func WithKeepWorkDir(keep bool) ScanOption {
	return func(opts *ScanOptions) {
		opts.KeepWorkDir = keep
	}
}

// WithManifestName overrides the base name of the package manifest file.
func WithManifestName(name string) ScanOption {
	return func(opts *ScanOptions) {
		opts.ManifestName = name
	}
}

// WithIncludePattern sets the regular expression a file path must match to
// be reported. An empty pattern matches every file.
func WithIncludePattern(pattern string) ScanOption {
	return func(opts *ScanOptions) {
		opts.IncludePattern = pattern
	}
}

// WithExcludeExtension sets the regular expression that removes candidates
// by filename extension. The pattern is matched against the extension
// without its leading dot, anchored at both ends, so "png" excludes
// "logo.png" but not "logo.mpng".
func WithExcludeExtension(pattern string) ScanOption {
	return func(opts *ScanOptions) {
		opts.ExcludeExtension = pattern
	}
}

// WithMaxFiles sets the maximum number of entries allowed in the archive.
func WithMaxFiles(maxFiles int) ScanOption {
	return func(opts *ScanOptions) {
		opts.MaxFiles = maxFiles
	}
}

// WithMaxSize sets the maximum total uncompressed size of all files combined.
func WithMaxSize(maxSize int64) ScanOption {
	return func(opts *ScanOptions) {
		opts.MaxSize = maxSize
	}
}

// WithMaxFileSize sets the maximum size allowed for any individual file.
func WithMaxFileSize(maxFileSize int64) ScanOption {
	return func(opts *ScanOptions) {
		opts.MaxFileSize = maxFileSize
	}
}

// WithAllowHiddenFiles determines whether hidden archive entries are allowed.
func WithAllowHiddenFiles(allow bool) ScanOption {
	return func(opts *ScanOptions) {
		opts.AllowHiddenFiles = allow
	}
}
