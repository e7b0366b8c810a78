// Command pkgscan extracts a gzip-compressed tar package archive, resolves
// its artifact tag, discovers files matching optional include/exclude
// patterns, and writes the ssd.json descriptor for downstream tooling.
//
// Usage:
//
//	pkgscan <archive-path> [include-pattern] [exclude-extension-pattern]
//
// The report is written to $PKGSCAN_OUTPUT_DIR/ssd.json, defaulting to the
// current directory when the variable is unset. The binary exits 0 on
// success and 1 on any failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/pkgscan"
)

// outputDirEnv names the environment variable controlling where the report
// file is written.
const outputDirEnv = "PKGSCAN_OUTPUT_DIR"

// errUsage is returned for invalid command-line invocations.
var errUsage = errors.New("usage: pkgscan <archive-path> [include-pattern] [exclude-extension-pattern]")

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, pkgscan.ClassifyError(err))
		}
		os.Exit(1)
	}
}

// run executes the scan pipeline for the given arguments. It is separated
// from main for testing and error handling.
func run(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errUsage
	}

	opts := []pkgscan.ScanOption{}
	if len(args) >= 2 && args[1] != "" {
		opts = append(opts, pkgscan.WithIncludePattern(args[1]))
	}
	if len(args) == 3 && args[2] != "" {
		opts = append(opts, pkgscan.WithExcludeExtension(args[2]))
	}

	scanner, err := pkgscan.New(opts...)
	if err != nil {
		return err
	}

	report, err := scanner.Scan(ctx, args[0])
	if err != nil {
		return err
	}
	slog.Info("scan complete",
		"artifactTag", report.ArtifactTag,
		"matched", len(report.BinaryFilePaths),
		"workDir", report.FilePath,
	)

	dest, err := pkgscan.WriteReport(billy.NewLocal(), report, os.Getenv(outputDirEnv))
	if err != nil {
		return err
	}
	slog.Info("report written", "path", dest)

	return nil
}
