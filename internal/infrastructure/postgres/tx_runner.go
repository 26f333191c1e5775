package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/application/liquidation"
	"github.com/jhoicas/Nomina-api/internal/application/payment"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ liquidation.TxRunner = (*TxRunner)(nil)
var _ payment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLiquidation transacción con los repos que lee y escribe una liquidación:
// encabezado del pago, borrado de detalles e inserción de detalles quedan
// confirmados juntos o no quedan.
func (r *TxRunner) RunLiquidation(ctx context.Context, fn func(
	periodRepo repository.PayPeriodRepository,
	employeeRepo repository.EmployeeRepository,
	parameterRepo repository.PayrollParameterRepository,
	incidentRepo repository.IncidentRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewPayPeriodRepository(q),
			NewEmployeeRepository(q),
			NewPayrollParameterRepository(q),
			NewIncidentRepository(q),
			NewPaymentRepository(q),
		)
	})
}

// RunPayments transacción para cambios de estado y edición de pagos.
func (r *TxRunner) RunPayments(ctx context.Context, fn func(paymentRepo repository.PaymentRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewPaymentRepository(q))
	})
}
