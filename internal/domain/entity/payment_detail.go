package entity

import "github.com/shopspring/decimal"

// Tipos de línea de detalle.
const (
	DetailEarning      = "devengado"
	DetailDeduction    = "deduccion"
	DetailContribution = "aporte"
)

// PaymentDetail línea de concepto de un pago.
type PaymentDetail struct {
	ID        int64
	PaymentID int64
	Concept   string
	Value     decimal.Decimal
	Kind      string // devengado, deduccion, aporte
}
