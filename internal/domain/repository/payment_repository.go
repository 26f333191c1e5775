package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// PaymentFilter filtros del listado de pagos.
type PaymentFilter struct {
	PeriodID   *int64
	EmployeeID *int64
}

// PaymentRepository define el puerto de persistencia para Payment y sus detalles.
type PaymentRepository interface {
	// Create inserta la cabecera y asigna ID. Una violación del índice único
	// parcial (empleado, periodo) devuelve *domain.DuplicatePaymentError.
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	// GetByIDForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Payment, error)
	// FindActiveForUpdate obtiene el pago no anulado de (empleado, periodo) y lo bloquea (FOR UPDATE).
	FindActiveForUpdate(ctx context.Context, employeeID, periodID int64) (*entity.Payment, error)
	List(ctx context.Context, f PaymentFilter) ([]*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id int64) error
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)

	// ReplaceDetails borra las líneas del pago e inserta las nuevas.
	ReplaceDetails(ctx context.Context, paymentID int64, details []*entity.PaymentDetail) error
	GetDetails(ctx context.Context, paymentID int64) ([]*entity.PaymentDetail, error)
}
