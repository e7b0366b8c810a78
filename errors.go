// Package pkgscan provides package archive inspection functionality.
// This file contains domain-specific error types for scan operations.
package pkgscan

import (
	"errors"
	"fmt"
)

// Sentinel errors for different failure modes.
// These identify specific types of failures in scan operations and can be
// checked using errors.Is() for error handling and testing.
var (
	// ErrInvalidArchive indicates the input path does not reference a usable
	// archive. The path may not exist, may not be a regular file, or may not
	// carry the expected compressed-tar extension.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrArchiveCorrupted indicates that the archive could not be decoded.
	// This covers gzip stream errors and malformed tar headers.
	ErrArchiveCorrupted = errors.New("archive corrupted or invalid")

	// ErrSecurityViolation indicates that a security constraint was violated
	// during extraction. This includes path traversal attempts, file size or
	// count limits exceeded, and dangerous permission bits.
	ErrSecurityViolation = errors.New("security constraint violated")

	// ErrExtractionFailed indicates that extraction did not produce the
	// expected layout. Most commonly the archive's top-level directory is
	// missing after extraction completed.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrInvalidPattern indicates that an include or exclude pattern could
	// not be compiled as a regular expression.
	ErrInvalidPattern = errors.New("invalid match pattern")

	// ErrReportWrite indicates that the report document could not be
	// persisted to its destination.
	ErrReportWrite = errors.New("report write failed")
)

// ScanError provides detailed context about scan operation failures.
// It wraps underlying errors with the pipeline step that failed and the
// path being processed.
//
// ScanError implements the error interface and supports error wrapping,
// allowing it to be used with errors.Is() and errors.As().
type ScanError struct {
	// Op describes the pipeline step that failed
	// (e.g., "validate", "extract", "match", "write").
	Op string

	// Path is the file or directory being processed when the error occurred.
	Path string

	// Err is the underlying error. This preserves the original error context
	// and allows for proper error wrapping.
	Err error
}

// Error implements the error interface.
// The format includes the operation, path, and underlying error message.
// Example output: "extract ../evil: security constraint violated"
func (e *ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err.Error())
}

// Unwrap returns the underlying error to support error wrapping.
// This allows ScanError to be used with errors.Is() and errors.As().
func (e *ScanError) Unwrap() error {
	return e.Err
}

// NewScanError creates a new ScanError with the specified context.
//
// Parameters:
//   - op: The pipeline step that failed (e.g., "validate", "extract")
//   - path: The path being processed
//   - err: The underlying error
func NewScanError(op, path string, err error) *ScanError {
	return &ScanError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsSecurityError checks if this error or any wrapped error is a security
// violation. Returns true if ErrSecurityViolation is found in the chain.
func (e *ScanError) IsSecurityError() bool {
	return errors.Is(e.Err, ErrSecurityViolation)
}

// IsUsageError checks if this error stems from caller input rather than the
// archive contents or the environment. Returns true if ErrInvalidArchive or
// ErrInvalidPattern is found in the chain.
func (e *ScanError) IsUsageError() bool {
	return errors.Is(e.Err, ErrInvalidArchive) || errors.Is(e.Err, ErrInvalidPattern)
}
