package services

import (
	"context"
	"log/slog"

	"mpulse/internal/cleaning"
	"mpulse/internal/config"
	"mpulse/internal/exporter"
	"mpulse/pkg/contracts/domain"
)

// AnalyticsService serves the artifacts the pipeline binaries produce:
// the refined analytics document and the cleaning report. It reads them
// from disk on every call so a re-run of the pipeline is picked up
// without restarting the server.
type AnalyticsService struct {
	paths  config.PathsConfig
	logger *slog.Logger
}

// NewAnalyticsService creates an analytics service over the configured
// artifact paths.
func NewAnalyticsService(paths config.PathsConfig, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{paths: paths, logger: logger}
}

// RefinedDocument loads the refined analytics artifact.
func (s *AnalyticsService) RefinedDocument(ctx context.Context) (*domain.RefinedDocument, error) {
	path := s.paths.RefinedDataPath()

	var doc domain.RefinedDocument
	if err := exporter.ReadJSON(path, &doc); err != nil {
		s.logger.WarnContext(ctx, "refined data artifact unavailable",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}
	return &doc, nil
}

// ProcessingErrors loads just the per-file error list from the refined
// analytics artifact.
func (s *AnalyticsService) ProcessingErrors(ctx context.Context) ([]domain.FileError, error) {
	doc, err := s.RefinedDocument(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Errors == nil {
		return []domain.FileError{}, nil
	}
	return doc.Errors, nil
}

// CleaningReport loads the cleaning stage report artifact.
func (s *AnalyticsService) CleaningReport(ctx context.Context) (*cleaning.Report, error) {
	path := s.paths.CleaningReportPath()

	var report cleaning.Report
	if err := exporter.ReadJSON(path, &report); err != nil {
		s.logger.WarnContext(ctx, "cleaning report artifact unavailable",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}
	return &report, nil
}
