package liquidation

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos que
// lee y escribe una liquidación. Si fn retorna error se hace rollback.
type TxRunner interface {
	RunLiquidation(ctx context.Context, fn func(
		periodRepo repository.PayPeriodRepository,
		employeeRepo repository.EmployeeRepository,
		parameterRepo repository.PayrollParameterRepository,
		incidentRepo repository.IncidentRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
