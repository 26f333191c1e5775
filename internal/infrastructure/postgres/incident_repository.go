package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.IncidentRepository = (*IncidentRepo)(nil)

// IncidentRepo implementación de IncidentRepository sobre novedades.
type IncidentRepo struct {
	q Querier
}

// NewIncidentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncidentRepository(q Querier) *IncidentRepo {
	return &IncidentRepo{q: q}
}

const incidentSelect = `
	SELECT n.id, n.empleado_id, COALESCE(e.nombre_empleado, ''), n.tipo, n.descripcion,
		n.fecha_inicio, n.fecha_fin, n.monto, n.estado, n.aprobado_por, n.fecha_registro
	FROM novedades n
	LEFT JOIN empleados e ON e.id = n.empleado_id`

func scanIncident(row pgx.Row) (*entity.Incident, error) {
	var i entity.Incident
	var desc *string
	err := row.Scan(&i.ID, &i.EmployeeID, &i.EmployeeName, &i.Type, &desc,
		&i.StartDate, &i.EndDate, &i.Amount, &i.Status, &i.ApprovedBy, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	i.Description = deref(desc)
	return &i, nil
}

// Create persiste una novedad.
func (r *IncidentRepo) Create(ctx context.Context, i *entity.Incident) error {
	query := `
		INSERT INTO novedades (empleado_id, tipo, descripcion, fecha_inicio, fecha_fin, monto, estado, aprobado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, fecha_registro`
	err := r.q.QueryRow(ctx, query,
		i.EmployeeID, i.Type, nullString(i.Description), i.StartDate, i.EndDate, i.Amount, i.Status, i.ApprovedBy,
	).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("insert novedad: %w", err)
	}
	return nil
}

// GetByID obtiene una novedad. (nil, nil) si no existe.
func (r *IncidentRepo) GetByID(ctx context.Context, id int64) (*entity.Incident, error) {
	i, err := scanIncident(r.q.QueryRow(ctx, incidentSelect+` WHERE n.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get novedad: %w", err)
	}
	return i, nil
}

// List novedades filtradas; rango de fechas por solapamiento.
func (r *IncidentRepo) List(ctx context.Context, f repository.IncidentFilter) ([]*entity.Incident, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.EmployeeID != nil {
		add("n.empleado_id = $%d", *f.EmployeeID)
	}
	if f.Status != "" {
		add("n.estado = $%d", f.Status)
	}
	if f.Type != "" {
		add("n.tipo = $%d", f.Type)
	}
	if f.To != nil {
		add("n.fecha_inicio <= $%d", *f.To)
	}
	if f.From != nil {
		add("(n.fecha_fin IS NULL OR n.fecha_fin >= $%d)", *f.From)
	}

	query := incidentSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY n.fecha_inicio DESC, n.id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list novedades: %w", err)
	}
	defer rows.Close()
	var list []*entity.Incident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan novedad: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Update actualiza todos los campos editables, incluido estado y aprobador.
func (r *IncidentRepo) Update(ctx context.Context, i *entity.Incident) error {
	query := `
		UPDATE novedades SET empleado_id = $2, tipo = $3, descripcion = $4, fecha_inicio = $5,
			fecha_fin = $6, monto = $7, estado = $8, aprobado_por = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		i.ID, i.EmployeeID, i.Type, nullString(i.Description), i.StartDate, i.EndDate, i.Amount, i.Status, i.ApprovedBy)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("update novedad: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIncidentNotFound
	}
	return nil
}

// Delete elimina una novedad.
func (r *IncidentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM novedades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete novedad: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIncidentNotFound
	}
	return nil
}

// SumApprovedByType suma por tipo las novedades aprobadas del empleado que se
// solapan con [start, end]: fecha_inicio ≤ end AND (fecha_fin IS NULL OR fecha_fin ≥ start).
func (r *IncidentRepo) SumApprovedByType(ctx context.Context, employeeID int64, start, end time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT tipo, COALESCE(SUM(monto), 0)
		FROM novedades
		WHERE empleado_id = $1
		  AND estado = $2
		  AND fecha_inicio <= $3
		  AND (fecha_fin IS NULL OR fecha_fin >= $4)
		GROUP BY tipo`
	rows, err := r.q.Query(ctx, query, employeeID, entity.IncidentApproved, end, start)
	if err != nil {
		return nil, fmt.Errorf("sumar novedades: %w", err)
	}
	defer rows.Close()
	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var kind string
		var total decimal.Decimal
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, fmt.Errorf("scan suma novedades: %w", err)
		}
		totals[kind] = total
	}
	return totals, rows.Err()
}
