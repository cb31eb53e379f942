package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"mpulse/internal/cleaning"
	"mpulse/internal/config"
	"mpulse/internal/exporter"
	"mpulse/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory with raw exports (defaults to configured data dir)")
	outDir := flag.String("out", "", "output directory for cleaned files (defaults to configured cleaned dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if *inDir == "" {
		*inDir = cfg.Paths.DataDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.CleanedDir
	}

	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx, runID := infrastructure.ContextWithRunID(context.Background())
	logger = logger.With(slog.String("run_id", runID))

	logger.InfoContext(ctx, "cleaning stage starting",
		slog.String("input", *inDir),
		slog.String("output", *outDir))

	cleaner := cleaning.NewCleaner(*inDir, *outDir, cfg.Paths.BackupDir, logger)
	report, err := cleaner.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "cleaning stage failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reportPath := cfg.Paths.CleaningReportPath()
	if err := exporter.WriteJSON(reportPath, report); err != nil {
		logger.ErrorContext(ctx, "failed to write cleaning report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "cleaning stage finished",
		slog.Int("files_processed", report.Summary.FilesProcessed),
		slog.Int("rows_removed", report.Summary.TotalRowsRemoved),
		slog.String("report", reportPath))
}
