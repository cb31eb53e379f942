package http

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "mpulse/internal/errors"
	"mpulse/internal/services"
)

// AnalyticsHandler serves the refined analytics artifacts
type AnalyticsHandler struct {
	service *services.AnalyticsService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *services.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "analytics")),
	}
}

// Analytics handles GET /api/analytics
func (h *AnalyticsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.RefinedDocument(r.Context())
	if err != nil {
		h.renderArtifactError(w, r, "refined data", err)
		return
	}
	render.JSON(w, r, doc)
}

// ProcessingErrors handles GET /api/analytics/errors
func (h *AnalyticsHandler) ProcessingErrors(w http.ResponseWriter, r *http.Request) {
	fileErrors, err := h.service.ProcessingErrors(r.Context())
	if err != nil {
		h.renderArtifactError(w, r, "refined data", err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"count":  len(fileErrors),
		"errors": fileErrors,
	})
}

// CleaningReport handles GET /api/cleaning/report
func (h *AnalyticsHandler) CleaningReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CleaningReport(r.Context())
	if err != nil {
		h.renderArtifactError(w, r, "cleaning report", err)
		return
	}
	render.JSON(w, r, report)
}

// renderArtifactError maps artifact read failures onto API errors: a
// missing artifact means the pipeline has not run yet (404), anything
// else is a server-side read failure (500).
func (h *AnalyticsHandler) renderArtifactError(w http.ResponseWriter, r *http.Request, artifact string, err error) {
	var appErr *apierrors.AppError
	if stderrors.As(err, &appErr) && appErr.Type == apierrors.ErrTypeNotFound {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrArtifactNotFound))
		return
	}

	h.logger.ErrorContext(r.Context(), "failed to read artifact",
		slog.String("artifact", artifact),
		slog.String("error", err.Error()))
	render.Render(w, r, apierrors.NewErrorResponse(apierrors.ArtifactError(artifact, err)))
}
