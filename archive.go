// Package pkgscan provides package archive inspection functionality.
// This file contains tar.gz archive creation, used to build package
// archives compatible with the scanner.
package pkgscan

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
)

// Archiver creates tar.gz archives from directory trees.
// Archives are written in a streaming fashion to minimize memory usage and
// use the standard tar.gz format compatible with common tools and with the
// Scanner's extraction.
type Archiver struct {
	fs core.FS
}

// NewArchiver creates an Archiver backed by the local filesystem.
func NewArchiver() *Archiver {
	return &Archiver{fs: billy.NewLocal()}
}

// NewArchiverWithFS creates an Archiver using a custom filesystem
// implementation. This is primarily used for testing.
func NewArchiverWithFS(fsys core.FS) *Archiver {
	return &Archiver{fs: fsys}
}

// Archive writes a tar.gz archive of sourceDir to output.
// Entry names are recorded relative to sourceDir, so archiving a directory
// that contains a single top-level folder produces the layout the Scanner
// expects.
//
// Returns an error if the source directory doesn't exist, is not readable,
// or if writing to the output fails.
func (a *Archiver) Archive(ctx context.Context, sourceDir string, output io.Writer) error {
	if sourceDir == "" {
		return fmt.Errorf("source directory cannot be empty")
	}
	if output == nil {
		return fmt.Errorf("output writer cannot be nil")
	}
	if exists, err := a.fs.Exists(sourceDir); err != nil || !exists {
		return fmt.Errorf("source directory does not exist: %s", sourceDir)
	}

	gzipWriter := gzip.NewWriter(output)
	defer gzipWriter.Close()

	tarWriter := tar.NewWriter(gzipWriter)
	defer tarWriter.Close()

	return a.fs.Walk(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk failed at %s: %w", path, err)
		}

		if ctxErr := isDone(ctx, "archiving"); ctxErr != nil {
			return ctxErr
		}

		relPath, relErr := filepath.Rel(sourceDir, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, relErr)
		}
		if relPath == "." {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("failed to get file info for %s: %w", path, infoErr)
		}

		header, hdrErr := tar.FileInfoHeader(info, "")
		if hdrErr != nil {
			return fmt.Errorf("failed to create tar header for %s: %w", path, hdrErr)
		}
		header.Name = filepath.ToSlash(relPath)

		if writeErr := tarWriter.WriteHeader(header); writeErr != nil {
			return fmt.Errorf("failed to write tar header for %s: %w", relPath, writeErr)
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		file, openErr := a.fs.Open(path)
		if openErr != nil {
			return fmt.Errorf("failed to open file %s: %w", path, openErr)
		}
		defer file.Close()

		if _, copyErr := io.Copy(tarWriter, file); copyErr != nil {
			return fmt.Errorf("failed to write file content for %s: %w", relPath, copyErr)
		}
		return nil
	})
}

// isDone returns a wrapped context cancellation error if ctx is done.
func isDone(ctx context.Context, action string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s canceled: %w", action, ctx.Err())
	default:
		return nil
	}
}
