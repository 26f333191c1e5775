package dto

import "github.com/shopspring/decimal"

// LiquidationRequest body para POST /api/pagos/liquidar.
type LiquidationRequest struct {
	PeriodID     int64   `json:"periodo_id" validate:"required,gt=0"`
	EmployeeID   *int64  `json:"empleado_id" validate:"omitempty,gt=0"`
	EmployeeName string  `json:"nombre_empleado" validate:"required_without=EmployeeID,max=150"`
	PaymentDate  *string `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
	Method       string  `json:"metodo_pago" validate:"omitempty,oneof=transferencia efectivo cheque"`
	Overwrite    bool    `json:"sobrescribir"`
}

// BatchLiquidationRequest body para POST /api/nomina/liquidar/:periodo_id.
type BatchLiquidationRequest struct {
	PaymentDate *string `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
	Method      string  `json:"metodo_pago" validate:"omitempty,oneof=transferencia efectivo cheque"`
	Overwrite   bool    `json:"sobrescribir"`
}

// LiquidationResponse resultado de liquidar un empleado en un periodo.
type LiquidationResponse struct {
	Message   string                `json:"message"`
	Payment   LiquidatedPaymentDTO  `json:"pago"`
	Employee  LiquidatedEmployeeDTO `json:"empleado"`
	Period    LiquidatedPeriodDTO   `json:"periodo"`
	Breakdown BreakdownDTO          `json:"desglose"`
	Incidents []IncidentTotalDTO    `json:"novedades"`
}

type LiquidatedPaymentDTO struct {
	ID          int64           `json:"id"`
	PaymentDate string          `json:"fecha_pago"`
	Method      string          `json:"metodo_pago"`
	Status      string          `json:"estado"`
	NetPay      decimal.Decimal `json:"total_neto"`
	Replaced    bool            `json:"reemplazado"`
}

type LiquidatedEmployeeDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Document string `json:"documento"`
	Email    string `json:"email,omitempty"`
}

type LiquidatedPeriodDTO struct {
	ID     int64  `json:"id"`
	Start  string `json:"inicio"`
	End    string `json:"fin"`
	Status string `json:"estado"`
}

// BreakdownDTO desglose: concepto → valor, con la clave "total" en cada grupo.
type BreakdownDTO struct {
	BaseSalary   decimal.Decimal            `json:"salario_base"`
	Earnings     map[string]decimal.Decimal `json:"devengos"`
	Deductions   map[string]decimal.Decimal `json:"deducciones"`
	Subtotal     decimal.Decimal            `json:"subtotal"`
	NetPay       decimal.Decimal            `json:"total_neto"`
	SubsidyApply bool                       `json:"aplica_aux_transporte"`
	RulesVersion string                     `json:"version_reglas"`
}

// IncidentTotalDTO suma de novedades aprobadas de un tipo.
type IncidentTotalDTO struct {
	Type  string          `json:"tipo"`
	Total decimal.Decimal `json:"total"`
}

// BatchLiquidationResponse resultado de la liquidación masiva.
type BatchLiquidationResponse struct {
	PeriodID  int64                    `json:"periodo_id"`
	Succeeded int                      `json:"exitosos"`
	Failed    int                      `json:"fallidos"`
	Results   []BatchLiquidationResult `json:"resultados"`
}

// BatchLiquidationResult resultado por empleado.
type BatchLiquidationResult struct {
	EmployeeID int64            `json:"empleado_id"`
	Name       string           `json:"nombre"`
	OK         bool             `json:"ok"`
	PaymentID  *int64           `json:"pago_id,omitempty"`
	NetPay     *decimal.Decimal `json:"total_neto,omitempty"`
	Error      string           `json:"error,omitempty"`
	Code       string           `json:"codigo,omitempty"`
}
