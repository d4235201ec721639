package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/pancakebitgit/escaner/internal/config"
	"github.com/pancakebitgit/escaner/internal/exporter"
	"github.com/pancakebitgit/escaner/internal/files"
	"github.com/pancakebitgit/escaner/internal/infrastructure"
	"github.com/pancakebitgit/escaner/internal/scanner"
	"github.com/pancakebitgit/escaner/internal/snapshot"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("darkpool-scanner", flag.ContinueOnError)
	fileD1 := fs.String("d1", "", "path to the day 1 snapshot CSV (pair mode, requires -d2)")
	fileD2 := fs.String("d2", "", "path to the day 2 snapshot CSV (pair mode, requires -d1)")
	dir := fs.String("dir", "", "directory containing date-named snapshot files (defaults to scanner.data_dir)")
	out := fs.String("out", "", "optional output CSV file path for the results")
	configFile := fs.String("config", "", "optional YAML config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	// One trace ID per run so every log line of a scan can be correlated.
	ctx := infrastructure.WithTraceID(context.Background(), uuid.NewString())
	logger = infrastructure.LoggerFromContext(ctx)

	pairMode := *fileD1 != "" || *fileD2 != ""
	if pairMode && (*fileD1 == "" || *fileD2 == "") {
		return fmt.Errorf("pair mode requires both -d1 and -d2")
	}
	if pairMode && *dir != "" {
		return fmt.Errorf("-dir cannot be combined with -d1/-d2")
	}

	var days []files.SnapshotFile
	if pairMode {
		days = []files.SnapshotFile{
			files.FileFromPath(*fileD1),
			files.FileFromPath(*fileD2),
		}
		logger.InfoContext(ctx, "processing snapshot pair",
			slog.String("d1", *fileD1),
			slog.String("d2", *fileD2))
	} else {
		scanDir := *dir
		if scanDir == "" {
			scanDir = cfg.Scanner.DataDir
		}

		discovery := files.NewDiscovery(logger)
		days, err = discovery.FindSnapshotFiles(scanDir)
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "snapshot files discovered",
			slog.String("dir", scanDir),
			slog.Int("count", len(days)))

		if len(days) == 0 {
			logger.WarnContext(ctx, "no snapshot files found", slog.String("dir", scanDir))
			fmt.Fprintln(stdout, "No snapshot files found.")
			return nil
		}
	}

	loader := snapshot.NewLoader(logger)
	matcher := scanner.NewMatcher(logger, loader.Load)

	results, err := matcher.Run(ctx, days)
	if err != nil {
		if errors.Is(err, scanner.ErrNoReadableInput) {
			logger.ErrorContext(ctx, "no readable input files, nothing to scan")
			fmt.Fprintln(stdout, "No readable input files.")
			return nil
		}
		return err
	}

	logger.InfoContext(ctx, "scan complete", slog.Int("result_count", len(results)))

	if len(results) == 0 {
		fmt.Fprintln(stdout, "No dark pool activity detected.")
		return nil
	}

	writer := exporter.NewCSVWriter(logger, cfg.Scanner.OutputBOM)
	if err := writer.Write(stdout, results); err != nil {
		return err
	}

	if *out != "" {
		if err := writer.WriteFile(*out, results); err != nil {
			return err
		}
		logger.InfoContext(ctx, "results saved", slog.String("path", *out))
	}

	return nil
}
