package payment

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repo de pagos.
// Si fn retorna error se hace rollback.
type TxRunner interface {
	RunPayments(ctx context.Context, fn func(paymentRepo repository.PaymentRepository) error) error
}

// Payslip datos del desprendible de pago.
type Payslip struct {
	Payment  *entity.Payment
	Employee *entity.Employee // nil si el empleado fue eliminado
	Details  []*entity.PaymentDetail
}

// PayslipGenerator produce el PDF de un desprendible.
type PayslipGenerator interface {
	GeneratePayslipPDF(ctx context.Context, slip Payslip) ([]byte, error)
}

// PaymentsExporter produce la hoja de cálculo de un listado de pagos.
type PaymentsExporter interface {
	ExportPayments(ctx context.Context, payments []*entity.Payment) ([]byte, error)
}
