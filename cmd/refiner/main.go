package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"mpulse/internal/config"
	"mpulse/internal/dataprocessing"
	"mpulse/internal/exporter"
	"mpulse/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory with cleaned exports (defaults to configured cleaned dir)")
	out := flag.String("out", "", "output path for the refined data artifact (defaults to configured reports dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if *inDir == "" {
		*inDir = cfg.Paths.CleanedDir
	}
	if *out == "" {
		*out = cfg.Paths.RefinedDataPath()
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

	logger.InfoContext(ctx, "refinement stage starting", slog.String("input", *inDir))

	processor := dataprocessing.NewProcessor(*inDir, logger)
	doc, err := processor.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "refinement stage failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := exporter.WriteJSON(*out, doc); err != nil {
		logger.ErrorContext(ctx, "failed to write refined data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "refinement stage finished",
		slog.Int("merchants", doc.Merchants.TotalMerchants),
		slog.Int("customers", doc.Customers.TotalOnboarded),
		slog.Int("business_accounts", doc.BusinessCustomers.TotalBusinessAccounts),
		slog.Int("file_errors", len(doc.Errors)),
		slog.String("artifact", *out))
}
