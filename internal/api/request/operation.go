package request

// OperationRequest carries the operation form fields for create and update.
// Updates are full replacements: the form always posts the complete record.
// Optional numeric fields are pointers; absent means never entered.
type OperationRequest struct {
	Address       string `json:"direccion"`
	OperationType string `json:"tipo_operacion"`
	Status        string `json:"estado"`

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

	OperationDate   *string `json:"fecha_operacion,omitempty"`
	ReservationDate *string `json:"fecha_reserva,omitempty"`
	CaptureDate     *string `json:"fecha_captacion,omitempty"`

	AssignedExpenses *float64 `json:"gastos_asignados,omitempty"`
	IsExclusive      bool     `json:"exclusiva"`
}
