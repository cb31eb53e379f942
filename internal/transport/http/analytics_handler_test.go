package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpulse/internal/cleaning"
	"mpulse/internal/config"
	"mpulse/internal/exporter"
	"mpulse/pkg/contracts/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.ReportsDir = t.TempDir()
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyticsEndpoint(t *testing.T) {
	cfg := testConfig(t)
	router := NewRouter(cfg, testLogger())

	t.Run("missing artifact returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("serves the refined document", func(t *testing.T) {
		doc := domain.RefinedDocument{
			Summary: domain.PlatformSummary{
				TotalEntitiesOnboarded: 5,
				DataProcessingDate:     time.Now().Format(time.RFC3339),
			},
			Errors: []domain.FileError{{File: "a.csv", Stage: "sales", Reason: "empty"}},
		}
		require.NoError(t, exporter.WriteJSON(cfg.Paths.RefinedDataPath(), doc))

		req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.RefinedDocument
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 5, got.Summary.TotalEntitiesOnboarded)

		// every response carries a request id for correlation
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("errors endpoint returns the per-file list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/analytics/errors", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got struct {
			Count  int                `json:"count"`
			Errors []domain.FileError `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Count)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, "a.csv", got.Errors[0].File)
	})
}

func TestCleaningReportEndpoint(t *testing.T) {
	cfg := testConfig(t)
	router := NewRouter(cfg, testLogger())

	report := cleaning.Report{
		CleaningDate:    time.Now().Format(time.RFC3339),
		Summary:         cleaning.Summary{FilesProcessed: 2},
		FileDetails:     map[string]cleaning.FileDetail{},
		Recommendations: []string{"Data quality looks good"},
	}
	require.NoError(t, exporter.WriteJSON(cfg.Paths.CleaningReportPath(), report))

	req := httptest.NewRequest(http.MethodGet, "/api/cleaning/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got cleaning.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Summary.FilesProcessed)
}

func TestHealthEndpoint(t *testing.T) {
	cfg := testConfig(t)
	router := NewRouter(cfg, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Status    string            `json:"status"`
		Artifacts map[string]string `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	// no artifacts yet, so the server reports itself degraded
	assert.Equal(t, "degraded", got.Status)
	assert.Equal(t, "missing", got.Artifacts["refined_data"])
}
