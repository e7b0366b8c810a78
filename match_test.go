package pkgscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the given files (path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestCompileCriteria_InvalidPatterns(t *testing.T) {
	tests := []struct {
		name    string
		include string
		exclude string
	}{
		{name: "bad include", include: "(unclosed"},
		{name: "bad exclude", exclude: "[z-a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileCriteria(tt.include, tt.exclude, "package_manifest.ini")
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestMatchFiles_NoPatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/a.bin":                "a",
		"pkg/sub/b.txt":            "b",
		"pkg/package_manifest.ini": "package_version=1\n",
	})

	criteria, err := compileCriteria("", "", "package_manifest.ini")
	require.NoError(t, err)

	matched, err := criteria.matchFiles(billy.NewLocal(), root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"./pkg/a.bin", "./pkg/sub/b.txt"}, matched)
}

func TestMatchFiles_IncludeNarrows(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/progress.bin": "a",
		"pkg/other.bin":    "b",
	})

	criteria, err := compileCriteria("progress", "", "package_manifest.ini")
	require.NoError(t, err)

	matched, err := criteria.matchFiles(billy.NewLocal(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"./pkg/progress.bin"}, matched)
}

func TestMatchFiles_ExcludeIsAnchoredToExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/logo.png":  "a",
		"pkg/logo.mpng": "b",
		"pkg/noext":     "c",
	})

	criteria, err := compileCriteria("", "png", "package_manifest.ini")
	require.NoError(t, err)

	matched, err := criteria.matchFiles(billy.NewLocal(), root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"./pkg/logo.mpng", "./pkg/noext"}, matched)
}

func TestMatchFiles_ExcludeAlternation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/a.png": "a",
		"pkg/a.jpg": "b",
		"pkg/a.bin": "c",
	})

	criteria, err := compileCriteria("", "png|jpg", "package_manifest.ini")
	require.NoError(t, err)

	matched, err := criteria.matchFiles(billy.NewLocal(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"./pkg/a.bin"}, matched)
}

func TestMatchFiles_ManifestAlwaysSkipped(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/package_manifest.ini":     "package_version=1\n",
		"pkg/sub/package_manifest.ini": "package_version=2\n",
		"pkg/a.bin":                    "a",
	})

	// Even an include pattern that matches the manifest cannot surface it.
	criteria, err := compileCriteria("manifest|a\\.bin", "", "package_manifest.ini")
	require.NoError(t, err)

	matched, err := criteria.matchFiles(billy.NewLocal(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"./pkg/a.bin"}, matched)
}

func TestMatchFiles_EmptyTree(t *testing.T) {
	criteria, err := compileCriteria("", "", "package_manifest.ini")
	require.NoError(t, err)

	matched, err := criteria.matchFiles(billy.NewLocal(), t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}
