// Package pkgscan inspects gzip-compressed tar package archives and produces
// a JSON descriptor for downstream release tooling.
//
// A scan extracts the archive into a scratch directory, resolves an artifact
// tag from the bundled package manifest (falling back to the archive
// filename), and discovers the files inside it that match optional
// include/exclude patterns. Key features:
//   - Streaming tar.gz extraction with security validation
//     (path traversal, size limits, file count limits, permissions)
//   - Artifact tag resolution from package_manifest.ini or filename
//   - Regexp-based file discovery with extension exclusion
//   - Filesystem abstraction for testing and custom storage
//
// Basic usage:
//
//	scanner, err := pkgscan.New(
//	    pkgscan.WithIncludePattern("progress"),
//	    pkgscan.WithExcludeExtension("png"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	report, err := scanner.Scan(ctx, "/path/to/app-1.0.tar.gz")
//	if err != nil {
//	    return err
//	}
//
//	// Persist the descriptor as ssd.json
//	path, err := pkgscan.WriteReport(billy.NewLocal(), report, ".")
//
// The cmd/pkgscan binary wraps this package for use in release pipelines.
package pkgscan
