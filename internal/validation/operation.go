package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/realtrackapp/BackOffice-Backend/internal/api/request"
)

// ValidOperationStatus contains the allowed operation status values.
var ValidOperationStatus = map[string]bool{
	"En Curso": true, "Cerrada": true, "Caida": true,
}

// ValidateOperationRequest validates an operation create/update request.
//
// The calculation engine is intentionally total and never rejects numeric
// input; contract violations (negative base value, percentages outside
// [0,100]) are caught here at the form boundary instead.
//
// Required fields:
//   - direccion: non-empty address
//   - tipo_operacion: non-empty operation type
//   - estado: one of: En Curso, Cerrada, Caida (empty defaults to En Curso)
//   - user_uid: valid UUID of the primary advisor
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateOperationRequest(req request.OperationRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PrimaryAdvisorID); err != nil {
		errors["user_uid"] = err.Error()
	}
	if req.AdditionalAdvisorID != nil {
		if err := ValidateUUID(*req.AdditionalAdvisorID); err != nil {
			errors["user_uid_adicional"] = err.Error()
		}
	}

	if strings.TrimSpace(req.Address) == "" {
		errors["direccion"] = "address is required"
	}
	if strings.TrimSpace(req.OperationType) == "" {
		errors["tipo_operacion"] = "operation type is required"
	}
	if req.Status != "" && !ValidOperationStatus[req.Status] {
		errors["estado"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	if req.BaseValue < 0 {
		errors["valor_reserva"] = "base value cannot be negative"
	}

	checkPercent(errors, "porcentaje_honorarios_asesor", &req.AdvisorFeePercent)
	checkPercent(errors, "porcentaje_honorarios_broker", &req.BrokerFeePercent)
	checkPercent(errors, "porcentaje_compartido", req.SharedWithPercent)
	checkPercent(errors, "porcentaje_referido", req.ReferredPercent)
	checkPercent(errors, "porcentaje_punta_compradora", req.BuyerSidePercent)
	checkPercent(errors, "porcentaje_punta_vendedora", req.SellerSidePercent)
	checkPercent(errors, "porcentaje_honorarios_asesor_adicional", req.AdditionalAdvisorPercent)

	checkDate(errors, "fecha_operacion", req.OperationDate)
	checkDate(errors, "fecha_reserva", req.ReservationDate)
	checkDate(errors, "fecha_captacion", req.CaptureDate)

	if req.AssignedExpenses != nil && *req.AssignedExpenses < 0 {
		errors["gastos_asignados"] = "assigned expenses cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// checkPercent flags provided percentages outside the [0,100] range.
// nil is fine: a missing percentage is treated as 0 by the engine.
func checkPercent(errors map[string]string, field string, p *float64) {
	if p == nil {
		return
	}
	if *p < 0 || *p > 100 {
		errors[field] = "percentage must be between 0 and 100"
	}
}

// checkDate flags provided dates that are not in YYYY-MM-DD format.
func checkDate(errors map[string]string, field string, date *string) {
	if date == nil {
		return
	}
	if _, err := time.Parse("2006-01-02", *date); err != nil {
		errors[field] = err.Error()
	}
}
