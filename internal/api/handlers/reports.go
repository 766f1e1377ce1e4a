package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
	"github.com/realtrackapp/BackOffice-Backend/internal/validation"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService       *service.ReportService
	materializedService *service.MaterializedReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(
	reportService *service.ReportService,
	materializedService *service.MaterializedReportService,
) *ReportHandler {
	return &ReportHandler{
		reportService:       reportService,
		materializedService: materializedService,
	}
}

// viewerAndFilter extracts the viewer UUID and operation filter common to
// every report endpoint. Returns false after writing the error response.
func viewerAndFilter(w http.ResponseWriter, r *http.Request) (string, model.OperationFilter, bool) {
	viewerID := r.URL.Query().Get("viewer")
	if err := validation.ValidateUUID(viewerID); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Valid viewer UUID is required", err)
		return "", model.OperationFilter{}, false
	}

	filter := model.OperationFilter{
		Status: r.URL.Query().Get("estado"),
		Year:   r.URL.Query().Get("anio"),
		Month:  r.URL.Query().Get("mes"),
		Type:   r.URL.Query().Get("tipo"),
		Query:  r.URL.Query().Get("q"),
	}
	return viewerID, filter, true
}

// Totals aggregates the viewer's filtered operations into report totals.
func (h *ReportHandler) Totals(w http.ResponseWriter, r *http.Request) {
	viewerID, filter, ok := viewerAndFilter(w, r)
	if !ok {
		return
	}

	totals, err := h.reportService.GetReportTotals(viewerID, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Viewer not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to compute report totals", err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

// Yearly returns twelve monthly totals for the requested year, preferring
// materialized rows and recomputing on demand when none exist.
func (h *ReportHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	viewerID := r.URL.Query().Get("viewer")
	if err := validation.ValidateUUID(viewerID); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Valid viewer UUID is required", err)
		return
	}

	year := time.Now().UTC().Year()
	if yearStr := r.URL.Query().Get("anio"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			respondErrorMap(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	months, err := h.materializedService.GetYearlyReportWithFallback(viewerID, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Viewer not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to compute yearly report", err)
		return
	}

	respondJSON(w, http.StatusOK, months)
}

// Team returns per-advisor contribution rows over the filtered set.
func (h *ReportHandler) Team(w http.ResponseWriter, r *http.Request) {
	viewerID, filter, ok := viewerAndFilter(w, r)
	if !ok {
		return
	}

	contributions, err := h.reportService.GetTeamReport(viewerID, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Viewer not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to compute team report", err)
		return
	}

	respondJSON(w, http.StatusOK, contributions)
}

// Profitability returns the per-operation profitability rows.
func (h *ReportHandler) Profitability(w http.ResponseWriter, r *http.Request) {
	viewerID, filter, ok := viewerAndFilter(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.GetProfitabilityReport(viewerID, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Viewer not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to compute profitability report", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// Rebuild recalculates the materialized monthly reports for every user.
// Developer endpoint, gated behind the API key middleware.
func (h *ReportHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if yearStr := r.URL.Query().Get("anio"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			respondErrorMap(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	if err := h.materializedService.RebuildAll(r.Context(), year); err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "Failed to rebuild materialized reports", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
