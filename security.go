// Package pkgscan provides package archive inspection functionality.
// This file contains security validators for safe archive extraction.
package pkgscan

import "fmt"

// Validator checks for security issues during archive extraction.
// Implementations validate different aspects of entries and running totals
// to prevent vulnerabilities such as decompression bombs and privilege
// escalation through dangerous permission bits.
type Validator interface {
	// ValidateEntry checks if a single archive entry is acceptable.
	// This includes size limits and permission checks.
	ValidateEntry(info EntryInfo) error

	// ValidateTotals checks if the running extraction totals are within
	// acceptable limits. This prevents decompression bombs by enforcing
	// aggregate file count and size limits.
	ValidateTotals(stats ExtractionStats) error
}

// EntryInfo represents archive entry metadata used for security validation.
type EntryInfo struct {
	// Name is the entry path within the archive
	Name string

	// Size is the uncompressed size of the entry in bytes
	Size int64

	// Mode contains the permission and type bits from the tar header
	Mode uint32
}

// ExtractionStats represents running extraction totals used for security
// validation.
type ExtractionStats struct {
	// Files is the number of entries processed so far
	Files int

	// Bytes is the total uncompressed size of entries processed so far
	Bytes int64
}

// LimitValidator enforces size and count limits on archives.
// It prevents resource exhaustion attacks by limiting individual file
// sizes, the total uncompressed size, and the number of entries.
type LimitValidator struct {
	// MaxFileSize is the maximum allowed size for any individual file.
	// Set to 0 to disable the per-file limit.
	MaxFileSize int64

	// MaxTotalSize is the maximum allowed total uncompressed size.
	// Set to 0 to disable the total size limit.
	MaxTotalSize int64

	// MaxFiles is the maximum number of entries allowed.
	// Set to 0 to disable the entry count limit.
	MaxFiles int
}

// NewLimitValidator creates a LimitValidator with the specified limits.
func NewLimitValidator(maxFileSize, maxTotalSize int64, maxFiles int) *LimitValidator {
	return &LimitValidator{
		MaxFileSize:  maxFileSize,
		MaxTotalSize: maxTotalSize,
		MaxFiles:     maxFiles,
	}
}

// ValidateEntry checks if an entry's size is within acceptable limits.
func (v *LimitValidator) ValidateEntry(info EntryInfo) error {
	if v.MaxFileSize > 0 && info.Size > v.MaxFileSize {
		return NewScanError("validate", info.Name, ErrSecurityViolation)
	}
	return nil
}

// ValidateTotals checks if the running totals are within acceptable limits.
func (v *LimitValidator) ValidateTotals(stats ExtractionStats) error {
	if v.MaxFiles > 0 && stats.Files > v.MaxFiles {
		return NewScanError("validate", "archive", ErrSecurityViolation)
	}
	if v.MaxTotalSize > 0 && stats.Bytes > v.MaxTotalSize {
		return NewScanError("validate", "archive", ErrSecurityViolation)
	}
	return nil
}

// ModeValidator rejects entries carrying dangerous permission bits.
// It prevents privilege escalation by refusing setuid and setgid files.
type ModeValidator struct{}

// NewModeValidator creates a new ModeValidator.
func NewModeValidator() *ModeValidator {
	return &ModeValidator{}
}

// ValidateEntry checks entry permissions for setuid (04000) and setgid
// (02000) bits.
func (v *ModeValidator) ValidateEntry(info EntryInfo) error {
	if info.Mode&0o4000 != 0 || info.Mode&0o2000 != 0 {
		return NewScanError("validate", info.Name, ErrSecurityViolation)
	}
	return nil
}

// ValidateTotals is a no-op for ModeValidator since it validates at entry
// level.
func (v *ModeValidator) ValidateTotals(stats ExtractionStats) error {
	return nil
}

// ValidatorChain combines multiple validators and executes them in sequence.
// It fails fast, returning the first validation error encountered.
type ValidatorChain struct {
	validators []Validator
}

// NewValidatorChain creates a ValidatorChain with the specified validators.
func NewValidatorChain(validators ...Validator) *ValidatorChain {
	return &ValidatorChain{validators: validators}
}

// ValidateEntry runs all validators' ValidateEntry methods in sequence.
func (vc *ValidatorChain) ValidateEntry(info EntryInfo) error {
	for _, validator := range vc.validators {
		if err := validator.ValidateEntry(info); err != nil {
			return fmt.Errorf("entry validation failed for %s: %w", info.Name, err)
		}
	}
	return nil
}

// ValidateTotals runs all validators' ValidateTotals methods in sequence.
func (vc *ValidatorChain) ValidateTotals(stats ExtractionStats) error {
	for _, validator := range vc.validators {
		if err := validator.ValidateTotals(stats); err != nil {
			return fmt.Errorf(
				"archive validation failed (files: %d, bytes: %d): %w",
				stats.Files,
				stats.Bytes,
				err,
			)
		}
	}
	return nil
}
