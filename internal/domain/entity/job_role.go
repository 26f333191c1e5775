package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobRole representa un cargo del catálogo.
type JobRole struct {
	ID             int64
	Name           string
	BaseSalary     decimal.Decimal // salario sugerido
	DepartmentID   *int64
	DepartmentName string // solo lectura
	CreatedAt      time.Time
}
