package dto

import "github.com/shopspring/decimal"

// IncidentRequest body para POST/PUT /api/novedades.
type IncidentRequest struct {
	EmployeeID  int64            `json:"empleado_id" validate:"required,gt=0"`
	Type        string           `json:"tipo" validate:"required,oneof=incapacidad licencia vacaciones horas_extra ausencia bonificacion descuento"`
	Description string           `json:"descripcion" validate:"omitempty,max=2000"`
	StartDate   string           `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	EndDate     *string          `json:"fecha_fin" validate:"omitempty,datetime=2006-01-02"`
	Amount      *decimal.Decimal `json:"monto"`
	Status      string           `json:"estado" validate:"omitempty,oneof=pendiente aprobada rechazada"`
}

// IncidentResponse novedad con el nombre del empleado.
type IncidentResponse struct {
	ID           int64           `json:"id"`
	EmployeeID   int64           `json:"empleado_id"`
	EmployeeName string          `json:"nombre_empleado"`
	Type         string          `json:"tipo"`
	Description  string          `json:"descripcion,omitempty"`
	StartDate    string          `json:"fecha_inicio"`
	EndDate      *string         `json:"fecha_fin"`
	Amount       decimal.Decimal `json:"monto"`
	Status       string          `json:"estado"`
	ApprovedBy   *int64          `json:"aprobado_por"`
	CreatedAt    string          `json:"fecha_registro"`
}

// IncidentFilterRequest query de GET /api/reportes/novedades y GET /api/novedades.
type IncidentFilterRequest struct {
	EmployeeID int64  `query:"empleado_id" validate:"omitempty,gt=0"`
	Status     string `query:"estado" validate:"omitempty,oneof=pendiente aprobada rechazada"`
	Type       string `query:"tipo" validate:"omitempty,oneof=incapacidad licencia vacaciones horas_extra ausencia bonificacion descuento"`
	From       string `query:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"fecha_fin" validate:"omitempty,datetime=2006-01-02"`
}

// IncidentReportResponse reporte de novedades con totales por tipo.
type IncidentReportResponse struct {
	Novedades    []IncidentResponse         `json:"novedades"`
	TotalPorTipo map[string]decimal.Decimal `json:"total_por_tipo"`
	Total        decimal.Decimal            `json:"total"`
}
