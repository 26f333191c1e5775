package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de empleado.
const (
	EmployeeActive   = "activo"
	EmployeeInactive = "inactivo"
)

// MaxBaseSalary tope de NUMERIC(12,2); aplica también al salario sugerido del cargo.
var MaxBaseSalary = decimal.RequireFromString("9999999999.99")

// Employee representa un empleado de la empresa (directorio de nómina).
type Employee struct {
	ID              int64
	Name            string
	Document        string // cédula o documento nacional, único
	Email           string
	Phone           string
	Address         string
	HireDate        time.Time
	TerminationDate *time.Time // nil = vinculado
	Status          string     // activo, inactivo
	JobRoleID       int64
	JobRoleName     string // solo lectura (JOIN con cargos)
	BaseSalary      decimal.Decimal
	HealthInsurer   string // EPS
	PensionFund     string // fondo de pensiones
	RiskInsurer     string // ARL
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive indica si el empleado puede ser liquidado.
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeActive
}

// DeriveStatus aplica la regla: el empleado queda inactivo solo con fecha de retiro.
func (e *Employee) DeriveStatus() {
	if e.TerminationDate != nil {
		e.Status = EmployeeInactive
		return
	}
	e.Status = EmployeeActive
}
