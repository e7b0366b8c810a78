package pkgscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTag(t *testing.T) {
	tests := []struct {
		name        string
		archivePath string
		want        string
	}{
		{name: "tar.gz suffix", archivePath: "app-1.0.tar.gz", want: "app-1.0"},
		{name: "tgz suffix", archivePath: "app-1.0.tgz", want: "app-1.0"},
		{name: "bare gz suffix", archivePath: "app-1.0.gz", want: "app-1.0"},
		{name: "full path", archivePath: "/releases/app-2.3.1.tar.gz", want: "app-2.3.1"},
		{name: "no recognized suffix", archivePath: "app-1.0.zip", want: "app-1.0.zip"},
		{name: "version with dots", archivePath: "service-0.10.2-rc1.tar.gz", want: "service-0.10.2-rc1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTag(tt.archivePath))
		})
	}
}

func TestResolveTag(t *testing.T) {
	// Manifest version wins when present, filename fallback otherwise.
	assert.Equal(t, "2.0", resolveTag("2.0", "app-1.0.tar.gz"))
	assert.Equal(t, "app-1.0", resolveTag("", "app-1.0.tar.gz"))
}
