package model

import (
	"strings"
	"time"
)

// OperationStatus represents the lifecycle state of an operation.
// Transitions (En Curso -> Cerrada, En Curso -> Caida) happen through the
// CRUD layer; the calculation engine only ever reads the status.
type OperationStatus string

const (
	StatusInProgress OperationStatus = "En Curso"
	StatusClosed     OperationStatus = "Cerrada"
	StatusFallen     OperationStatus = "Caida"
)

// StatusAll is the filter value that selects every status except Caida.
// Fallen operations are excluded from "all" views and only appear when
// explicitly requested.
const StatusAll = "all"

// Operation represents a single real-estate transaction as recorded by an
// advisor or team leader. Optional numeric fields are pointers; nil means
// the value was never entered on the form and is treated as 0 by the
// calculation engine.
type Operation struct {
	ID            string          `json:"id"`
	Address       string          `json:"direccion"`
	OperationType string          `json:"tipo_operacion"`
	Status        OperationStatus `json:"estado"`

	BaseValue         float64  `json:"valor_reserva"`
	AdvisorFeePercent float64  `json:"porcentaje_honorarios_asesor"`
	BrokerFeePercent  float64  `json:"porcentaje_honorarios_broker"`
	SharedWithPercent *float64 `json:"porcentaje_compartido,omitempty"`
	ReferredPercent   *float64 `json:"porcentaje_referido,omitempty"`

	BuyerSide         bool     `json:"punta_compradora"`
	SellerSide        bool     `json:"punta_vendedora"`
	BuyerSidePercent  *float64 `json:"porcentaje_punta_compradora,omitempty"`
	SellerSidePercent *float64 `json:"porcentaje_punta_vendedora,omitempty"`

	PrimaryAdvisorID         string   `json:"user_uid"`
	PrimaryAdvisorName       string   `json:"realizador_venta"`
	AdditionalAdvisorID      *string  `json:"user_uid_adicional,omitempty"`
	AdditionalAdvisorPercent *float64 `json:"porcentaje_honorarios_asesor_adicional,omitempty"`

	OperationDate   *time.Time `json:"fecha_operacion,omitempty"`
	ReservationDate *time.Time `json:"fecha_reserva,omitempty"`
	CaptureDate     *time.Time `json:"fecha_captacion,omitempty"`

	AssignedExpenses *float64 `json:"gastos_asignados,omitempty"`
	IsExclusive      bool     `json:"exclusiva"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// EffectiveDate returns the date used for period filtering.
// The operation date falls back to the reservation date, then the capture
// date, when absent. Returns nil when none of the three is set.
func (o Operation) EffectiveDate() *time.Time {
	if o.OperationDate != nil {
		return o.OperationDate
	}
	if o.ReservationDate != nil {
		return o.ReservationDate
	}
	return o.CaptureDate
}

// IsRental reports whether the operation is one of the rental variants.
// Rental types share the "Alquiler" name prefix (Alquiler, Alquiler Temporal,
// Alquiler Comercial).
func (o Operation) IsRental() bool {
	return strings.HasPrefix(o.OperationType, "Alquiler")
}

// InvolvesAdvisor reports whether the given user executed this operation,
// either as the primary advisor or as the additional advisor.
func (o Operation) InvolvesAdvisor(userID string) bool {
	if o.PrimaryAdvisorID == userID {
		return true
	}
	return o.AdditionalAdvisorID != nil && *o.AdditionalAdvisorID == userID
}

// OperationFilter selects operations for list views and reports.
// Zero values ("" or "all") bypass the corresponding dimension, except
// Status where "all" still excludes fallen operations.
type OperationFilter struct {
	Status string // "all" or an explicit OperationStatus value
	Year   string // "all" or a four-digit year
	Month  string // "all" or "1".."12"
	Type   string // "all" or an operation type name
	Query  string // free text matched against address and advisor name
}
