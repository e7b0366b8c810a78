// Package pkgscan provides package archive inspection functionality.
// This file contains streaming tar.gz extraction with security validation.
package pkgscan

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/fs/core"

	validatepkg "github.com/jmgilman/go/pkgscan/internal/validate"
)

// extractArchive expands a tar.gz stream into targetDir and returns the
// name of the first top-level entry listed in the archive.
//
// Extraction enforces the security constraints configured in opts: path
// traversal and symlink validation, size and file count limits, and
// rejection of dangerous permission bits. Entries are processed strictly
// in archive order; any validation failure aborts the extraction.
func extractArchive(
	ctx context.Context,
	fsys core.FS,
	input io.Reader,
	targetDir string,
	opts *ScanOptions,
) (string, error) {
	gzipReader, err := gzip.NewReader(input)
	if err != nil {
		return "", NewScanError("extract", targetDir, ErrArchiveCorrupted)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	if mkErr := fsys.MkdirAll(targetDir, 0o755); mkErr != nil {
		return "", NewScanError("extract", targetDir, fmt.Errorf("failed to create target directory: %w", mkErr))
	}

	validators := NewValidatorChain(
		NewLimitValidator(opts.MaxFileSize, opts.MaxSize, opts.MaxFiles),
		NewModeValidator(),
	)

	ev := validatepkg.NewEntryValidator()
	ev.AllowHiddenFiles = opts.AllowHiddenFiles
	ev.RootPath = targetDir

	rootAbs, absErr := filepath.Abs(targetDir)
	if absErr != nil {
		return "", NewScanError("extract", targetDir, fmt.Errorf("failed to resolve target directory: %w", absErr))
	}

	var topLevel string
	stats := ExtractionStats{}

	for {
		header, nextErr := tarReader.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return "", NewScanError("extract", targetDir, ErrArchiveCorrupted)
		}

		if topLevel == "" {
			topLevel = topLevelName(header.Name)
		}

		if err := handleEntry(ctx, tarReader, header, targetDir, rootAbs, validators, ev, &stats, fsys); err != nil {
			return "", err
		}
	}

	return topLevel, nil
}

// topLevelName returns the first path component of an archive entry name.
func topLevelName(name string) string {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "./")
	if idx := strings.IndexByte(clean, '/'); idx >= 0 {
		return clean[:idx]
	}
	return clean
}

// handleEntry validates a single archive entry and dispatches extraction by
// header type.
func handleEntry(
	ctx context.Context,
	tr *tar.Reader,
	hdr *tar.Header,
	targetDir string,
	rootAbs string,
	validators Validator,
	ev *validatepkg.EntryValidator,
	stats *ExtractionStats,
	fsys core.FS,
) error {
	if err := isDone(ctx, "extraction"); err != nil {
		return err
	}

	if err := ev.ValidatePath(hdr.Name); err != nil {
		return NewScanError("extract", hdr.Name, ErrSecurityViolation)
	}

	fullPath, err := safeJoin(rootAbs, targetDir, hdr.Name)
	if err != nil {
		return NewScanError("extract", hdr.Name, ErrSecurityViolation)
	}

	if err := validators.ValidateEntry(EntryInfo{
		Name: hdr.Name,
		Size: hdr.Size,
		Mode: uint32(hdr.Mode),
	}); err != nil {
		return err
	}

	stats.Files++
	stats.Bytes += hdr.Size
	if err := validators.ValidateTotals(*stats); err != nil {
		return err
	}

	if err := ensureParentDir(fsys, fullPath); err != nil {
		return NewScanError("extract", hdr.Name, err)
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := fsys.MkdirAll(fullPath, 0o755); err != nil {
			return NewScanError("extract", hdr.Name, fmt.Errorf("failed to create directory: %w", err))
		}
		return nil
	case tar.TypeReg:
		return extractRegularFile(fsys, tr, hdr.Name, fullPath)
	case tar.TypeSymlink:
		return extractSymlink(fsys, ev, hdr, fullPath)
	default:
		// Character devices, FIFOs, and other special entries are skipped.
		return nil
	}
}

// safeJoin joins member onto targetDir and ensures the result stays within
// rootAbs.
func safeJoin(rootAbs, targetDir, member string) (string, error) {
	targetAbs, err := filepath.Abs(filepath.Clean(filepath.Join(targetDir, member)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve target path: %w", err)
	}
	if targetAbs != rootAbs && !strings.HasPrefix(targetAbs, rootAbs+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes target directory: %s", member)
	}
	return targetAbs, nil
}

// ensureParentDir creates the parent directory for a path.
func ensureParentDir(fsys core.FS, fullPath string) error {
	if err := fsys.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", fullPath, err)
	}
	return nil
}

// extractRegularFile writes out a regular file from the tar stream.
func extractRegularFile(fsys core.FS, tr *tar.Reader, name, fullPath string) error {
	file, err := fsys.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return NewScanError("extract", name, fmt.Errorf("failed to create file: %w", err))
	}
	defer file.Close()

	if _, err := io.Copy(file, tr); err != nil {
		return NewScanError("extract", name, fmt.Errorf("failed to write file content: %w", err))
	}
	return nil
}

// extractSymlink creates a symlink after validator approval.
// Filesystems without symlink support skip the entry.
func extractSymlink(fsys core.FS, ev *validatepkg.EntryValidator, hdr *tar.Header, fullPath string) error {
	if err := ev.ValidateSymlink(hdr.Name, hdr.Linkname); err != nil {
		return NewScanError("extract", hdr.Name, ErrSecurityViolation)
	}

	if sfs, ok := fsys.(core.SymlinkFS); ok {
		if err := sfs.Symlink(hdr.Linkname, fullPath); err != nil {
			return NewScanError("extract", hdr.Name, fmt.Errorf("failed to create symlink: %w", err))
		}
	}
	return nil
}
