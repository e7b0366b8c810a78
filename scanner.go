// Package pkgscan provides package archive inspection functionality.
// This file contains the Scanner, which drives the scan pipeline.
package pkgscan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
)

// Scanner inspects gzip-compressed tar package archives.
// A scan runs a single forward-only pipeline: validate the archive path,
// extract into a scratch directory, resolve the artifact tag, match files,
// and hand back a Report. Any step's failure terminates the scan.
//
// A Scanner is safe to reuse across scans unless a pinned work directory is
// configured, in which case concurrent scans would collide on it.
type Scanner struct {
	fs       core.FS
	opts     *ScanOptions
	criteria *MatchCriteria
}

// New creates a Scanner with the provided options.
// Match patterns are compiled eagerly, so invalid expressions fail here
// with ErrInvalidPattern rather than mid-scan.
func New(opts ...ScanOption) (*Scanner, error) {
	options := DefaultScanOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.FS == nil {
		options.FS = billy.NewLocal()
	}
	if options.ManifestName == "" {
		options.ManifestName = DefaultScanOptions().ManifestName
	}

	criteria, err := compileCriteria(options.IncludePattern, options.ExcludeExtension, options.ManifestName)
	if err != nil {
		return nil, err
	}

	return &Scanner{
		fs:       options.FS,
		opts:     options,
		criteria: criteria,
	}, nil
}

// Scan processes the archive at archivePath and returns its descriptor.
//
// The extraction directory is reported in Report.FilePath. It is preserved
// by default so the reported paths stay resolvable; see WithKeepWorkDir.
// A temporary directory created by the scanner is always removed when the
// scan fails.
func (s *Scanner) Scan(ctx context.Context, archivePath string) (report *Report, err error) {
	archivePath, err = resolveLocalPath(s.fs, archivePath)
	if err != nil {
		return nil, NewScanError("validate", archivePath, ErrInvalidArchive)
	}
	if err := s.validateArchivePath(archivePath); err != nil {
		return nil, err
	}

	workDir, created, err := s.acquireWorkDir()
	if err != nil {
		return nil, err
	}
	defer func() {
		// Failed scans never leave a scanner-created directory behind.
		// Successful scans clean up only when the caller opted out of
		// keeping the extracted tree.
		if err != nil && created {
			_ = s.fs.RemoveAll(workDir)
		} else if err == nil && !s.opts.KeepWorkDir {
			_ = s.fs.RemoveAll(workDir)
		}
	}()

	if err := s.extract(ctx, archivePath, workDir); err != nil {
		return nil, err
	}

	tag, err := s.resolveTag(archivePath, workDir)
	if err != nil {
		return nil, err
	}

	matches, err := s.criteria.matchFiles(s.fs, workDir)
	if err != nil {
		return nil, NewScanError("match", workDir, err)
	}

	workAbs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, NewScanError("match", workDir, fmt.Errorf("failed to resolve work directory: %w", err))
	}

	return &Report{
		ArtifactTag:     tag,
		BinaryFilePaths: matches,
		FilePath:        workAbs,
	}, nil
}

// validateArchivePath checks that the path references an existing regular
// file with the expected compressed-archive extension. No extraction
// happens when validation fails.
func (s *Scanner) validateArchivePath(archivePath string) error {
	if archivePath == "" {
		return NewScanError("validate", archivePath, ErrInvalidArchive)
	}
	if !strings.HasSuffix(archivePath, ".gz") {
		return NewScanError("validate", archivePath, ErrInvalidArchive)
	}

	info, err := s.fs.Stat(archivePath)
	if err != nil || info.IsDir() {
		return NewScanError("validate", archivePath, ErrInvalidArchive)
	}

	return nil
}

// acquireWorkDir returns the extraction scratch directory, creating a
// uniquely named temporary directory when none is pinned. The second return
// reports whether the scanner created the directory.
func (s *Scanner) acquireWorkDir() (string, bool, error) {
	if s.opts.WorkDir != "" {
		dir, err := resolveLocalPath(s.fs, s.opts.WorkDir)
		if err != nil {
			return "", false, NewScanError("extract", s.opts.WorkDir, fmt.Errorf("failed to resolve work directory: %w", err))
		}
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", false, NewScanError("extract", dir, fmt.Errorf("failed to create work directory: %w", err))
		}
		return dir, false, nil
	}

	if tfs, ok := s.fs.(core.TempFS); ok {
		dir, err := tfs.TempDir("", "pkgscan-")
		if err != nil {
			return "", false, NewScanError("extract", "", fmt.Errorf("failed to create temp directory: %w", err))
		}
		return dir, true, nil
	}

	dir, err := os.MkdirTemp("", "pkgscan-")
	if err != nil {
		return "", false, NewScanError("extract", "", fmt.Errorf("failed to create temp directory: %w", err))
	}
	return dir, true, nil
}

// extract expands the archive into workDir and verifies the archive's
// top-level directory exists after extraction.
func (s *Scanner) extract(ctx context.Context, archivePath, workDir string) error {
	file, err := s.fs.Open(archivePath)
	if err != nil {
		return NewScanError("extract", archivePath, fmt.Errorf("failed to open archive: %w", err))
	}
	defer file.Close()

	topLevel, err := extractArchive(ctx, s.fs, file, workDir, s.opts)
	if err != nil {
		return err
	}

	if topLevel == "" {
		return NewScanError("extract", archivePath, ErrExtractionFailed)
	}
	topDir := filepath.Join(workDir, topLevel)
	info, statErr := s.fs.Stat(topDir)
	if statErr != nil || !info.IsDir() {
		return NewScanError("extract", topDir, ErrExtractionFailed)
	}

	return nil
}

// resolveLocalPath makes path absolute against the process working
// directory when fsys is backed by the local filesystem, which is rooted at
// "/" rather than the working directory. Paths on other filesystem types
// resolve as given.
func resolveLocalPath(fsys core.FS, path string) (string, error) {
	if path == "" || fsys.Type() != core.FSTypeLocal {
		return path, nil
	}
	return filepath.Abs(path)
}

// resolveTag determines the artifact tag, preferring the manifest's
// declared version over the filename-derived fallback.
func (s *Scanner) resolveTag(archivePath, workDir string) (string, error) {
	manifestPath, err := findManifest(s.fs, workDir, s.opts.ManifestName)
	if err != nil {
		return "", NewScanError("resolve", workDir, err)
	}

	version := ""
	if manifestPath != "" {
		version, err = readManifestVersion(s.fs, manifestPath)
		if err != nil {
			return "", NewScanError("resolve", manifestPath, err)
		}
	}

	return resolveTag(version, archivePath), nil
}
