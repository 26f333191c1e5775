package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PayrollParameterRepository puerto de lectura/escritura de parámetros de nómina.
type PayrollParameterRepository interface {
	// ListAll devuelve nombre → valor.
	ListAll(ctx context.Context) (map[string]decimal.Decimal, error)
	List(ctx context.Context) ([]*entity.PayrollParameter, error)
	Upsert(ctx context.Context, p *entity.PayrollParameter) error
}
