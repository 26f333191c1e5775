package entity

import "github.com/shopspring/decimal"

// PayrollParameter constante de nómina (tabla parametros_nomina).
type PayrollParameter struct {
	Name  string
	Value decimal.Decimal
}
