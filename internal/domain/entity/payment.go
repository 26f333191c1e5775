package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentTransfer = "transferencia"
	PaymentCash     = "efectivo"
	PaymentCheck    = "cheque"
)

// Estados de pago.
const (
	PaymentPending = "pendiente"
	PaymentPaid    = "pagado"
	PaymentVoided  = "anulado"
)

// MaxPaymentAmount tope de NUMERIC(14,2) para monto.
var MaxPaymentAmount = decimal.RequireFromString("999999999999.99")

// IsValidPaymentMethod valida el método de pago.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentTransfer, PaymentCash, PaymentCheck:
		return true
	}
	return false
}

// Payment cabecera de un pago de nómina.
// EmployeeName es una copia del nombre al momento del pago: el historial
// sobrevive si el empleado se elimina.
type Payment struct {
	ID           int64
	EmployeeID   *int64
	EmployeeName string
	PeriodID     *int64
	PeriodStart  *time.Time // solo lectura (JOIN con periodos_nomina)
	PeriodEnd    *time.Time // solo lectura
	PaymentDate  time.Time
	Amount       decimal.Decimal // neto a pagar
	Method       string
	Status       string
	Notes        string
	PaidAt       *time.Time // primera vez que se marcó pagado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsVoided indica si el pago fue anulado (estado terminal).
func (p *Payment) IsVoided() bool {
	return p.Status == PaymentVoided
}
