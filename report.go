// Package pkgscan provides package archive inspection functionality.
// This file contains the report document and its writer.
package pkgscan

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jmgilman/go/fs/core"
)

// ReportFileName is the fixed name of the descriptor file written next to
// the resolved output directory.
const ReportFileName = "ssd.json"

// Report is the JSON descriptor produced by a scan. The field names form a
// stable contract with downstream tooling and must not change.
type Report struct {
	// ArtifactTag is the resolved version-like identifier for the package.
	ArtifactTag string `json:"artifactTag"`

	// BinaryFilePaths lists the discovered files satisfying the match
	// criteria, in walk order. Always present in the output, possibly empty.
	BinaryFilePaths []string `json:"binaryFilePaths"`

	// FilePath is the absolute path of the extraction working directory the
	// listed files are relative to.
	FilePath string `json:"filePath"`
}

// WriteReport serializes the report and writes it to baseDir joined with
// ReportFileName, creating baseDir if needed. An empty baseDir means the
// current directory. Returns the path the report was written to.
//
// Failures are reported as ErrReportWrite; no partial report is considered
// valid.
func WriteReport(fsys core.FS, report *Report, baseDir string) (string, error) {
	if report == nil {
		return "", NewScanError("write", baseDir, fmt.Errorf("report cannot be nil"))
	}
	if baseDir == "" {
		baseDir = "."
	}
	// On the local filesystem "." and other relative paths must resolve
	// against the process working directory, not the filesystem root.
	resolved, resolveErr := resolveLocalPath(fsys, baseDir)
	if resolveErr != nil {
		return "", NewScanError("write", baseDir, ErrReportWrite)
	}
	baseDir = resolved

	// Guarantee an array, never null, for binaryFilePaths.
	out := *report
	if out.BinaryFilePaths == nil {
		out.BinaryFilePaths = []string{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return "", NewScanError("write", baseDir, ErrReportWrite)
	}
	data = append(data, '\n')

	dest := filepath.Join(baseDir, ReportFileName)
	if baseDir != "." {
		if err := fsys.MkdirAll(baseDir, 0o755); err != nil {
			return "", NewScanError("write", dest, ErrReportWrite)
		}
	}
	if err := fsys.WriteFile(dest, data, 0o644); err != nil {
		return "", NewScanError("write", dest, ErrReportWrite)
	}

	return dest, nil
}
