package pkgscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitValidator_FileSize(t *testing.T) {
	v := NewLimitValidator(100, 0, 0)

	assert.NoError(t, v.ValidateEntry(EntryInfo{Name: "small", Size: 100}))
	assert.ErrorIs(t, v.ValidateEntry(EntryInfo{Name: "big", Size: 101}), ErrSecurityViolation)
}

func TestLimitValidator_Totals(t *testing.T) {
	v := NewLimitValidator(0, 1000, 3)

	assert.NoError(t, v.ValidateTotals(ExtractionStats{Files: 3, Bytes: 1000}))
	assert.ErrorIs(t, v.ValidateTotals(ExtractionStats{Files: 4, Bytes: 10}), ErrSecurityViolation)
	assert.ErrorIs(t, v.ValidateTotals(ExtractionStats{Files: 1, Bytes: 1001}), ErrSecurityViolation)
}

func TestLimitValidator_ZeroDisablesLimits(t *testing.T) {
	v := NewLimitValidator(0, 0, 0)

	assert.NoError(t, v.ValidateEntry(EntryInfo{Name: "huge", Size: 1 << 40}))
	assert.NoError(t, v.ValidateTotals(ExtractionStats{Files: 1 << 20, Bytes: 1 << 40}))
}

func TestModeValidator(t *testing.T) {
	v := NewModeValidator()

	assert.NoError(t, v.ValidateEntry(EntryInfo{Name: "plain", Mode: 0o755}))
	assert.ErrorIs(t, v.ValidateEntry(EntryInfo{Name: "setuid", Mode: 0o4755}), ErrSecurityViolation)
	assert.ErrorIs(t, v.ValidateEntry(EntryInfo{Name: "setgid", Mode: 0o2755}), ErrSecurityViolation)
	assert.NoError(t, v.ValidateTotals(ExtractionStats{Files: 10}))
}

func TestValidatorChain_FailsFast(t *testing.T) {
	chain := NewValidatorChain(
		NewLimitValidator(10, 0, 0),
		NewModeValidator(),
	)

	// First validator rejects on size before the mode check runs.
	err := chain.ValidateEntry(EntryInfo{Name: "big-setuid", Size: 11, Mode: 0o4755})
	assert.ErrorIs(t, err, ErrSecurityViolation)

	// Mode violations still surface through the chain.
	err = chain.ValidateEntry(EntryInfo{Name: "setuid", Size: 1, Mode: 0o4755})
	assert.ErrorIs(t, err, ErrSecurityViolation)

	assert.NoError(t, chain.ValidateEntry(EntryInfo{Name: "ok", Size: 1, Mode: 0o644}))
}
