package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PayrollParameterRepository = (*PayrollParameterRepo)(nil)

// PayrollParameterRepo implementación de PayrollParameterRepository sobre parametros_nomina.
type PayrollParameterRepo struct {
	q Querier
}

// NewPayrollParameterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayrollParameterRepository(q Querier) *PayrollParameterRepo {
	return &PayrollParameterRepo{q: q}
}

// ListAll nombre → valor de todos los parámetros.
func (r *PayrollParameterRepo) ListAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(list))
	for _, p := range list {
		out[p.Name] = p.Value
	}
	return out, nil
}

// List parámetros ordenados por nombre.
func (r *PayrollParameterRepo) List(ctx context.Context) ([]*entity.PayrollParameter, error) {
	rows, err := r.q.Query(ctx, `SELECT nombre, valor FROM parametros_nomina ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list parametros: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayrollParameter
	for rows.Next() {
		var p entity.PayrollParameter
		if err := rows.Scan(&p.Name, &p.Value); err != nil {
			return nil, fmt.Errorf("scan parametro: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Upsert crea o reemplaza el valor del parámetro.
func (r *PayrollParameterRepo) Upsert(ctx context.Context, p *entity.PayrollParameter) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO parametros_nomina (nombre, valor) VALUES ($1, $2)
		ON CONFLICT (nombre) DO UPDATE SET valor = EXCLUDED.valor`, p.Name, p.Value)
	if err != nil {
		return fmt.Errorf("upsert parametro: %w", err)
	}
	return nil
}
