package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryValidator_ValidatePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		allowHidden bool
		wantErr     bool
	}{
		{name: "simple file", path: "pkg/app.bin"},
		{name: "nested file", path: "pkg/data/sub/file.txt"},
		{name: "directory entry", path: "pkg/"},
		{name: "empty path", path: "", wantErr: true},
		{name: "whitespace only", path: "   ", wantErr: true},
		{name: "absolute path", path: "/etc/passwd", wantErr: true},
		{name: "windows drive", path: `C:\windows\system32`, wantErr: true},
		{name: "unc path", path: `\\server\share\file`, wantErr: true},
		{name: "parent traversal", path: "../escape", wantErr: true},
		{name: "embedded traversal", path: "pkg/../../escape", wantErr: true},
		{name: "backslash traversal", path: `pkg\..\..\escape`, wantErr: true},
		{name: "nul byte", path: "pkg/a\x00b", wantErr: true},
		{name: "control character", path: "pkg/a\x01b", wantErr: true},
		{name: "hidden file rejected by default", path: "pkg/.secret", wantErr: true},
		{name: "hidden file allowed when enabled", path: "pkg/.secret", allowHidden: true},
		{name: "dot slash prefix", path: "./pkg/app.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewEntryValidator()
			v.AllowHiddenFiles = tt.allowHidden

			err := v.ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryValidator_ValidateSymlink(t *testing.T) {
	root := t.TempDir()
	v := NewEntryValidator()
	v.RootPath = root

	// Targets that stay inside the root are fine.
	require.NoError(t, v.ValidateSymlink("pkg/link", "app.bin"))
	require.NoError(t, v.ValidateSymlink("pkg/link", "sub/app.bin"))

	// Absolute and escaping targets are rejected.
	assert.Error(t, v.ValidateSymlink("pkg/link", "/etc/passwd"))
	assert.Error(t, v.ValidateSymlink("pkg/link", "../../escape"))
	assert.Error(t, v.ValidateSymlink("link", "../escape"))
}

func TestEntryValidator_ValidateSymlink_RequiresRoot(t *testing.T) {
	v := NewEntryValidator()
	assert.Error(t, v.ValidateSymlink("link", "target"))
}
