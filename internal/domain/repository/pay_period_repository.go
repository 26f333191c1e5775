package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// PayPeriodRepository puerto de persistencia para periodos de nómina.
type PayPeriodRepository interface {
	Create(ctx context.Context, p *entity.PayPeriod) error
	GetByID(ctx context.Context, id int64) (*entity.PayPeriod, error)
	List(ctx context.Context) ([]*entity.PayPeriod, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
