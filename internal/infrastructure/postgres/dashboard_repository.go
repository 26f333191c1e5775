package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.%s: %w", op, err)
	}
	return n, nil
}

func (r *DashboardRepo) CountEmployees(ctx context.Context) (int, error) {
	return r.count(ctx, "CountEmployees", `SELECT COUNT(*) FROM empleados`)
}

func (r *DashboardRepo) CountUsersByRole(ctx context.Context, role string) (int, error) {
	return r.count(ctx, "CountUsersByRole", `SELECT COUNT(*) FROM usuarios WHERE rol = $1`, role)
}

func (r *DashboardRepo) CountIncidentsByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, "CountIncidentsByStatus", `SELECT COUNT(*) FROM novedades WHERE estado = $1`, status)
}

// SumPaymentsBetween suma de pagos no anulados con fecha_pago en [from, to).
func (r *DashboardRepo) SumPaymentsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(monto), 0) FROM pagos
		WHERE fecha_pago >= $1 AND fecha_pago < $2 AND estado <> $3`,
		from, to, entity.PaymentVoided).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.SumPaymentsBetween: %w", err)
	}
	return total, nil
}

// LastPaymentDate fecha del último pago no anulado; nil si no hay pagos.
func (r *DashboardRepo) LastPaymentDate(ctx context.Context) (*time.Time, error) {
	var last *time.Time
	err := r.q.QueryRow(ctx, `SELECT MAX(fecha_pago) FROM pagos WHERE estado <> $1`, entity.PaymentVoided).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("dashboard.LastPaymentDate: %w", err)
	}
	return last, nil
}

// MonthlyPaymentTotals totales por mes desde since (meses sin pagos no aparecen).
func (r *DashboardRepo) MonthlyPaymentTotals(ctx context.Context, since time.Time) ([]repository.MonthlyTotal, error) {
	const query = `
	SELECT date_trunc('month', fecha_pago)::date AS mes,
	       COALESCE(SUM(monto), 0)              AS total
	FROM pagos
	WHERE fecha_pago >= $1 AND estado <> $2
	GROUP BY mes
	ORDER BY mes`
	rows, err := r.q.Query(ctx, query, since, entity.PaymentVoided)
	if err != nil {
		return nil, fmt.Errorf("dashboard.MonthlyPaymentTotals: %w", err)
	}
	defer rows.Close()
	var out []repository.MonthlyTotal
	for rows.Next() {
		var m repository.MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("dashboard.MonthlyPaymentTotals scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// HeadcountByJobRole empleados por cargo, de mayor a menor.
func (r *DashboardRepo) HeadcountByJobRole(ctx context.Context) ([]repository.RoleHeadcount, error) {
	const query = `
	SELECT c.nombre, COUNT(e.id) AS total
	FROM cargos c
	LEFT JOIN empleados e ON e.cargo_id = c.id
	GROUP BY c.id, c.nombre
	ORDER BY total DESC, c.nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard.HeadcountByJobRole: %w", err)
	}
	defer rows.Close()
	var out []repository.RoleHeadcount
	for rows.Next() {
		var h repository.RoleHeadcount
		if err := rows.Scan(&h.JobRole, &h.Total); err != nil {
			return nil, fmt.Errorf("dashboard.HeadcountByJobRole scan: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
