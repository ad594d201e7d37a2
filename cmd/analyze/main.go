// analyze runs the inventory risk analysis over local export files and
// prints the summary and critical items, without starting the server.
//
// Usage:
//
//	analyze [-format json|yaml] [-critical N] [-log-level LEVEL] FILE...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/stockrisk/internal/core"
	"github.com/JonMunkholm/stockrisk/internal/decode"
	"github.com/JonMunkholm/stockrisk/internal/inventory"
	"github.com/JonMunkholm/stockrisk/internal/logging"
	"github.com/JonMunkholm/stockrisk/internal/report"
)

// fileReport is the per-file output document.
type fileReport struct {
	File       string                  `json:"file" yaml:"file"`
	Format     decode.Format           `json:"format" yaml:"format"`
	DurationMs int64                   `json:"durationMs" yaml:"durationMs"`
	Unresolved []inventory.SchemaField `json:"unresolvedColumns,omitempty" yaml:"unresolvedColumns,omitempty"`
	Report     report.Context          `json:"report" yaml:"report"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 when any file fails,
// 2 on bad usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "json", "output format: json or yaml")
	critical := fs.Int("critical", report.DefaultCriticalLimit, "maximum critical items per file")
	level := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *format != "json" && *format != "yaml" {
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: analyze [flags] FILE...")
		fs.PrintDefaults()
		return 2
	}

	logger := logging.New(stderr, *level, "text")
	svc := core.NewService(core.Config{CriticalLimit: *critical}, inventory.DefaultAnalyzer(logger), nil, logger)

	var reports []fileReport
	failed := false
	for _, path := range fs.Args() {
		rep, err := analyzeFile(ctx, svc, path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", path, core.FormatUserError(err))
			logger.Debug("analysis failed", "file", path, "error", err)
			failed = true
			continue
		}
		reports = append(reports, rep)
	}

	if err := write(stdout, *format, reports); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

func analyzeFile(ctx context.Context, svc *core.Service, path string) (fileReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileReport{}, err
	}
	defer f.Close()

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	a, err := svc.Analyze(ctx, filepath.Base(path), f, size)
	if err != nil {
		return fileReport{}, err
	}
	return fileReport{
		File:       path,
		Format:     a.Format,
		DurationMs: a.DurationMs,
		Unresolved: a.Result.Columns.Unresolved(),
		Report:     a.ReportContext,
	}, nil
}

func write(w io.Writer, format string, reports []fileReport) error {
	if reports == nil {
		reports = []fileReport{}
	}
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
