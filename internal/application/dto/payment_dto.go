package dto

import "github.com/shopspring/decimal"

// PaymentRequest body para POST/PUT /api/pagos (pago manual).
// El estado no se edita aquí: usar /pagar o /anular.
type PaymentRequest struct {
	EmployeeID   *int64           `json:"empleado_id" validate:"omitempty,gt=0"`
	EmployeeName string           `json:"nombre_empleado" validate:"required_without=EmployeeID,max=150"`
	PeriodID     *int64           `json:"periodo_id" validate:"omitempty,gt=0"`
	PaymentDate  string           `json:"fecha_pago" validate:"required,datetime=2006-01-02"`
	Amount       *decimal.Decimal `json:"monto" validate:"required"`
	Method       string           `json:"metodo_pago" validate:"omitempty,oneof=transferencia efectivo cheque"`
	Notes        string           `json:"observaciones" validate:"omitempty,max=2000"`
}

// VoidPaymentRequest body opcional de POST /api/pagos/:id/anular.
type VoidPaymentRequest struct {
	Reason string `json:"motivo" validate:"omitempty,max=500"`
}

// PaymentResponse pago con datos de empleado y periodo.
type PaymentResponse struct {
	ID           int64                   `json:"id"`
	EmployeeID   *int64                  `json:"empleado_id"`
	EmployeeName string                  `json:"empleado_nombre"`
	PeriodID     *int64                  `json:"periodo_id"`
	PeriodStart  *string                 `json:"periodo_inicio"`
	PeriodEnd    *string                 `json:"periodo_fin"`
	PaymentDate  string                  `json:"fecha_pago"`
	Amount       decimal.Decimal         `json:"monto"`
	Method       string                  `json:"metodo_pago"`
	Status       string                  `json:"estado"`
	Notes        string                  `json:"observaciones,omitempty"`
	PaidAt       *string                 `json:"pagado_en,omitempty"`
	Details      []PaymentDetailResponse `json:"detalle,omitempty"`
}

// PaymentDetailResponse línea de pago_detalle.
type PaymentDetailResponse struct {
	ID      int64           `json:"id"`
	Concept string          `json:"concepto"`
	Value   decimal.Decimal `json:"valor"`
	Kind    string          `json:"tipo"`
}
