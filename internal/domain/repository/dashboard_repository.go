package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTotal total pagado en un mes.
type MonthlyTotal struct {
	Month time.Time // primer día del mes
	Total decimal.Decimal
}

// RoleHeadcount empleados por cargo.
type RoleHeadcount struct {
	JobRole string
	Total   int
}

// DashboardRepository consultas de solo lectura para el tablero.
type DashboardRepository interface {
	CountEmployees(ctx context.Context) (int, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
	SumPaymentsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	LastPaymentDate(ctx context.Context) (*time.Time, error)
	CountIncidentsByStatus(ctx context.Context, status string) (int, error)
	MonthlyPaymentTotals(ctx context.Context, since time.Time) ([]MonthlyTotal, error)
	HeadcountByJobRole(ctx context.Context) ([]RoleHeadcount, error)
}
