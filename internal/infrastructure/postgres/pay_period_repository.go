package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.PayPeriodRepository = (*PayPeriodRepo)(nil)

// PayPeriodRepo implementación de PayPeriodRepository sobre periodos_nomina.
type PayPeriodRepo struct {
	q Querier
}

// NewPayPeriodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayPeriodRepository(q Querier) *PayPeriodRepo {
	return &PayPeriodRepo{q: q}
}

// Create persiste un periodo nuevo.
func (r *PayPeriodRepo) Create(ctx context.Context, p *entity.PayPeriod) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO periodos_nomina (fecha_inicio, fecha_fin, estado) VALUES ($1, $2, $3) RETURNING id`,
		p.StartDate, p.EndDate, p.Status).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert periodo: %w", err)
	}
	return nil
}

// GetByID obtiene un periodo. (nil, nil) si no existe.
func (r *PayPeriodRepo) GetByID(ctx context.Context, id int64) (*entity.PayPeriod, error) {
	var p entity.PayPeriod
	err := r.q.QueryRow(ctx,
		`SELECT id, fecha_inicio, fecha_fin, estado FROM periodos_nomina WHERE id = $1`, id).
		Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get periodo: %w", err)
	}
	return &p, nil
}

// List periodos del más reciente al más antiguo.
func (r *PayPeriodRepo) List(ctx context.Context) ([]*entity.PayPeriod, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, fecha_inicio, fecha_fin, estado FROM periodos_nomina ORDER BY fecha_inicio DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list periodos: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayPeriod
	for rows.Next() {
		var p entity.PayPeriod
		if err := rows.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status); err != nil {
			return nil, fmt.Errorf("scan periodo: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado (abierto/cerrado).
func (r *PayPeriodRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE periodos_nomina SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado periodo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPeriodNotFound
	}
	return nil
}
