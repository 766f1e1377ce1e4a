package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/realtrackapp/BackOffice-Backend/internal/api/request"
	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
	"github.com/realtrackapp/BackOffice-Backend/internal/validation"
)

// OperationHandler handles operation-related HTTP requests
type OperationHandler struct {
	operationService    *service.OperationService
	materializedService *service.MaterializedReportService
}

// NewOperationHandler creates a new OperationHandler
func NewOperationHandler(
	operationService *service.OperationService,
	materializedService *service.MaterializedReportService,
) *OperationHandler {
	return &OperationHandler{
		operationService:    operationService,
		materializedService: materializedService,
	}
}

// Operations lists the viewer's operations with derived fee fields.
//
// Query parameters: viewer (required user UUID), estado, anio, mes, tipo, q.
// Omitted filter dimensions default to "all"; estado=all still hides fallen
// operations.
func (h *OperationHandler) Operations(w http.ResponseWriter, r *http.Request) {
	viewerID := r.URL.Query().Get("viewer")
	if err := validation.ValidateUUID(viewerID); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Valid viewer UUID is required", err)
		return
	}

	filter := model.OperationFilter{
		Status: r.URL.Query().Get("estado"),
		Year:   r.URL.Query().Get("anio"),
		Month:  r.URL.Query().Get("mes"),
		Type:   r.URL.Query().Get("tipo"),
		Query:  r.URL.Query().Get("q"),
	}

	views, err := h.operationService.GetOperations(viewerID, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Viewer not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to retrieve operations", err)
		return
	}

	respondJSON(w, http.StatusOK, views)
}

// GetOperation retrieves a single operation by UUID.
func (h *OperationHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	op, err := h.operationService.GetOperation(operationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Operation not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to retrieve operation", err)
		return
	}

	respondJSON(w, http.StatusOK, op)
}

// CreateOperation validates and persists a new operation.
func (h *OperationHandler) CreateOperation(w http.ResponseWriter, r *http.Request) {
	var req request.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validation.ValidateOperationRequest(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	op, err := h.operationService.CreateOperation(operationFromRequest(req))
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "Failed to create operation", err)
		return
	}

	h.invalidateReports(op)

	respondJSON(w, http.StatusCreated, op)
}

// UpdateOperation validates and replaces an existing operation.
func (h *OperationHandler) UpdateOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	var req request.OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validation.ValidateOperationRequest(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	// An update can reassign advisors; the previous advisors' cached rows
	// are stale too, so invalidate the record as stored before replacing it.
	previous, err := h.operationService.GetOperation(operationID)
	if err == nil {
		defer h.invalidateReports(previous)
	}

	op := operationFromRequest(req)
	op.ID = operationID

	if err := h.operationService.UpdateOperation(op); err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Operation not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to update operation", err)
		return
	}

	h.invalidateReports(op)

	respondJSON(w, http.StatusOK, op)
}

// DeleteOperation removes an operation by UUID.
func (h *OperationHandler) DeleteOperation(w http.ResponseWriter, r *http.Request) {
	operationID := chi.URLParam(r, "uuid")

	op, err := h.operationService.GetOperation(operationID)
	if err == nil {
		defer h.invalidateReports(op)
	}

	if err := h.operationService.DeleteOperation(operationID); err != nil {
		if errors.Is(err, apperrors.ErrOperationNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Operation not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to delete operation", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// invalidateReports drops the materialized rows of every advisor whose
// figures the write may have changed. Best effort: a failed invalidation is
// logged by the service layer fallback path, never surfaced to the form.
func (h *OperationHandler) invalidateReports(op model.Operation) {
	_ = h.materializedService.Invalidate(op.PrimaryAdvisorID)
	if op.AdditionalAdvisorID != nil {
		_ = h.materializedService.Invalidate(*op.AdditionalAdvisorID)
	}
}

// operationFromRequest maps the validated form fields onto the model.
// Dates were validated upstream; unparseable ones are treated as absent.
func operationFromRequest(req request.OperationRequest) model.Operation {
	status := model.OperationStatus(req.Status)
	if req.Status == "" {
		status = model.StatusInProgress
	}

	return model.Operation{
		Address:                  req.Address,
		OperationType:            req.OperationType,
		Status:                   status,
		BaseValue:                req.BaseValue,
		AdvisorFeePercent:        req.AdvisorFeePercent,
		BrokerFeePercent:         req.BrokerFeePercent,
		SharedWithPercent:        req.SharedWithPercent,
		ReferredPercent:          req.ReferredPercent,
		BuyerSide:                req.BuyerSide,
		SellerSide:               req.SellerSide,
		BuyerSidePercent:         req.BuyerSidePercent,
		SellerSidePercent:        req.SellerSidePercent,
		PrimaryAdvisorID:         req.PrimaryAdvisorID,
		PrimaryAdvisorName:       req.PrimaryAdvisorName,
		AdditionalAdvisorID:      req.AdditionalAdvisorID,
		AdditionalAdvisorPercent: req.AdditionalAdvisorPercent,
		OperationDate:            parseOptionalDate(req.OperationDate),
		ReservationDate:          parseOptionalDate(req.ReservationDate),
		CaptureDate:              parseOptionalDate(req.CaptureDate),
		AssignedExpenses:         req.AssignedExpenses,
		IsExclusive:              req.IsExclusive,
	}
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
