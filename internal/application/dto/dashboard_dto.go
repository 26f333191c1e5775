package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	Employees         int             `json:"empleados"`
	EmployeeUsers     int             `json:"usuarios"`
	Admins            int             `json:"admins"`
	MonthPayments     decimal.Decimal `json:"pagosMes"` // pagos no anulados del mes en curso
	LastPaymentDate   *string         `json:"ultimoPago"`
	PendingIncidents  int             `json:"novedadesPendientes"`
	ApprovedIncidents int             `json:"novedadesAprobadas"`
}

// MonthlyPaymentsDTO un punto de GET /api/dashboard/pagos-mensuales.
type MonthlyPaymentsDTO struct {
	MonthNum int             `json:"mes_num"`
	Month    string          `json:"mes"`   // ej: "Ene"
	Label    string          `json:"label"` // ej: "Enero 2026"
	Total    decimal.Decimal `json:"total"`
}

// HeadcountDTO un punto de GET /api/dashboard/empleados-por-cargo.
type HeadcountDTO struct {
	JobRole string `json:"cargo"`
	Total   int    `json:"total"`
}
