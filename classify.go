package pkgscan

import (
	"errors"

	platformerrors "github.com/jmgilman/go/errors"
)

// ClassifyError maps scan errors to platform error types.
// It uses errors.Is() to match the package sentinels and returns a
// PlatformError with the appropriate code and a stable message, preserving
// the original error as the cause. Unknown errors are wrapped with
// CodeUnknown so callers always receive a classified error.
//
// Callers at a process boundary (such as cmd/pkgscan) use the resulting
// code to pick exit behavior and user-facing messages.
func ClassifyError(err error) platformerrors.PlatformError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidArchive):
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "archive path is not a usable compressed archive")
	case errors.Is(err, ErrInvalidPattern):
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "match pattern is not a valid regular expression")
	case errors.Is(err, ErrArchiveCorrupted):
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "archive contents could not be decoded")
	case errors.Is(err, ErrSecurityViolation):
		return platformerrors.Wrap(err, platformerrors.CodeForbidden, "archive violates extraction security constraints")
	case errors.Is(err, ErrExtractionFailed):
		return platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "archive extraction failed")
	case errors.Is(err, ErrReportWrite):
		return platformerrors.Wrap(err, platformerrors.CodeInternal, "report could not be written")
	default:
		return platformerrors.Wrap(err, platformerrors.CodeUnknown, "scan failed")
	}
}
