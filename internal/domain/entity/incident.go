package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de novedad (deben coincidir con el CHECK de la tabla novedades).
const (
	IncidentSickLeave = "incapacidad"
	IncidentLeave     = "licencia"
	IncidentVacation  = "vacaciones"
	IncidentOvertime  = "horas_extra"
	IncidentAbsence   = "ausencia"
	IncidentBonus     = "bonificacion"
	IncidentDiscount  = "descuento"
)

// Estados de novedad.
const (
	IncidentPending  = "pendiente"
	IncidentApproved = "aprobada"
	IncidentRejected = "rechazada"
)

// MaxIncidentAmount tope de NUMERIC(12,2) para monto.
var MaxIncidentAmount = decimal.RequireFromString("9999999999.99")

// IncidentTypes lista los tipos válidos en el orden en que se presentan.
var IncidentTypes = []string{
	IncidentSickLeave, IncidentLeave, IncidentVacation, IncidentOvertime,
	IncidentAbsence, IncidentBonus, IncidentDiscount,
}

// IsValidIncidentType valida el tipo de novedad.
func IsValidIncidentType(t string) bool {
	for _, v := range IncidentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Incident representa una novedad de nómina de un empleado.
type Incident struct {
	ID           int64
	EmployeeID   int64
	EmployeeName string // solo lectura
	Type         string
	Description  string
	StartDate    time.Time
	EndDate      *time.Time
	Amount       decimal.Decimal
	Status       string
	ApprovedBy   *int64
	CreatedAt    time.Time
}

// Overlaps aplica la regla de solapamiento con un periodo:
// inicio ≤ fin_periodo AND (fin IS NULL OR fin ≥ inicio_periodo).
func (i *Incident) Overlaps(start, end time.Time) bool {
	if i.StartDate.After(end) {
		return false
	}
	return i.EndDate == nil || !i.EndDate.Before(start)
}
