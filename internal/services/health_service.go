package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"mpulse/internal/config"
)

// HealthService reports server liveness plus the availability of the
// pipeline artifacts the API serves.
type HealthService struct {
	version   string
	paths     config.PathsConfig
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Artifacts map[string]string      `json:"artifacts,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, paths config.PathsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check returns the current health status. The server is degraded, not
// down, when artifacts are missing: the pipeline may simply not have
// run yet.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
		Artifacts: map[string]string{
			"refined_data":    artifactState(s.paths.RefinedDataPath()),
			"cleaning_report": artifactState(s.paths.CleaningReportPath()),
		},
	}

	for _, state := range status.Artifacts {
		if state != "available" {
			status.Status = "degraded"
			break
		}
	}

	s.logger.DebugContext(ctx, "health check", slog.String("status", status.Status))
	return status
}

func artifactState(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "missing"
	}
	return "available"
}
