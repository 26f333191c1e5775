package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IncidentFilter filtros opcionales del reporte de novedades.
type IncidentFilter struct {
	EmployeeID *int64
	Status     string
	Type       string
	From       *time.Time
	To         *time.Time
}

// IncidentRepository puerto de persistencia para novedades.
type IncidentRepository interface {
	Create(ctx context.Context, i *entity.Incident) error
	GetByID(ctx context.Context, id int64) (*entity.Incident, error)
	List(ctx context.Context, f IncidentFilter) ([]*entity.Incident, error)
	Update(ctx context.Context, i *entity.Incident) error
	Delete(ctx context.Context, id int64) error
	// SumApprovedByType suma los montos de novedades aprobadas del empleado
	// que se solapan con [start, end], agrupados por tipo.
	SumApprovedByType(ctx context.Context, employeeID int64, start, end time.Time) (map[string]decimal.Decimal, error)
}
