package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// PaymentUseCase libro de pagos: registro manual, edición, cambios de estado
// y documentos (desprendible y exportación).
type PaymentUseCase struct {
	txRunner      TxRunner
	paymentRepo   repository.PaymentRepository
	employeeRepo  repository.EmployeeRepository
	periodRepo    repository.PayPeriodRepository
	payslips      PayslipGenerator
	exporter      PaymentsExporter
	defaultMethod string
	log           *logger.Logger
	now           func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner TxRunner,
	paymentRepo repository.PaymentRepository,
	employeeRepo repository.EmployeeRepository,
	periodRepo repository.PayPeriodRepository,
	payslips PayslipGenerator,
	exporter PaymentsExporter,
	defaultMethod string,
	log *logger.Logger,
) *PaymentUseCase {
	if defaultMethod == "" {
		defaultMethod = entity.PaymentTransfer
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentUseCase{
		txRunner:      txRunner,
		paymentRepo:   paymentRepo,
		employeeRepo:  employeeRepo,
		periodRepo:    periodRepo,
		payslips:      payslips,
		exporter:      exporter,
		defaultMethod: defaultMethod,
		log:           log.Named("payment"),
		now:           time.Now,
	}
}

// List pagos más recientes primero, opcionalmente por periodo y/o empleado.
func (uc *PaymentUseCase) List(ctx context.Context, periodID, employeeID *int64) ([]dto.PaymentResponse, error) {
	if periodID != nil {
		p, err := uc.periodRepo.GetByID(ctx, *periodID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrPeriodNotFound
		}
	}
	list, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{PeriodID: periodID, EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p, nil))
	}
	return out, nil
}

// Get pago con sus líneas de detalle.
func (uc *PaymentUseCase) Get(ctx context.Context, id int64) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPaymentNotFound
	}
	details, err := uc.paymentRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(p, details)
	return &resp, nil
}

// Create registra un pago manual en estado pendiente.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	p := &entity.Payment{Status: entity.PaymentPending}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.paymentRepo.Create(ctx, p); err != nil {
		return nil, uc.completeDuplicate(ctx, err, p)
	}
	return uc.Get(ctx, p.ID)
}

// Update edita los datos de un pago no anulado. El estado no cambia aquí.
func (uc *PaymentUseCase) Update(ctx context.Context, id int64, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	var target *entity.Payment
	err := uc.txRunner.RunPayments(ctx, func(paymentRepo repository.PaymentRepository) error {
		p, err := lockPayment(ctx, paymentRepo, id)
		if err != nil {
			return err
		}
		if p.IsVoided() {
			return domain.ErrPaymentVoided
		}
		if err := uc.apply(ctx, p, in); err != nil {
			return err
		}
		target = p
		return paymentRepo.Update(ctx, p)
	})
	if err != nil {
		if target != nil {
			return nil, uc.completeDuplicate(ctx, err, target)
		}
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete elimina un pago pendiente que nunca fue marcado pagado.
func (uc *PaymentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.RunPayments(ctx, func(paymentRepo repository.PaymentRepository) error {
		p, err := lockPayment(ctx, paymentRepo, id)
		if err != nil {
			return err
		}
		if p.Status != entity.PaymentPending || p.PaidAt != nil {
			return domain.ErrPaymentNotDeletable
		}
		return paymentRepo.Delete(ctx, id)
	})
}

// MarkPaid pendiente → pagado. Registra la fecha del primer pago.
func (uc *PaymentUseCase) MarkPaid(ctx context.Context, id int64) (*dto.PaymentResponse, error) {
	err := uc.txRunner.RunPayments(ctx, func(paymentRepo repository.PaymentRepository) error {
		p, err := lockPayment(ctx, paymentRepo, id)
		if err != nil {
			return err
		}
		switch p.Status {
		case entity.PaymentVoided:
			return domain.ErrPaymentVoided
		case entity.PaymentPaid:
			return domain.ErrPaymentAlreadyPaid
		}
		p.Status = entity.PaymentPaid
		if p.PaidAt == nil {
			now := uc.now().UTC()
			p.PaidAt = &now
		}
		return paymentRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("pago_id", id).Msg("pago marcado como pagado")
	return uc.Get(ctx, id)
}

// Void anula el pago (estado terminal). El motivo se agrega a las observaciones.
func (uc *PaymentUseCase) Void(ctx context.Context, id int64, in dto.VoidPaymentRequest) (*dto.PaymentResponse, error) {
	err := uc.txRunner.RunPayments(ctx, func(paymentRepo repository.PaymentRepository) error {
		p, err := lockPayment(ctx, paymentRepo, id)
		if err != nil {
			return err
		}
		if p.IsVoided() {
			return domain.ErrPaymentVoided
		}
		p.Status = entity.PaymentVoided
		if reason := strings.TrimSpace(in.Reason); reason != "" {
			p.Notes = strings.TrimSpace(p.Notes + "\nAnulado: " + reason)
		}
		return paymentRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("pago_id", id).Str("motivo", in.Reason).Msg("pago anulado")
	return uc.Get(ctx, id)
}

// Payslip genera el desprendible en PDF. Devuelve bytes y nombre de archivo.
func (uc *PaymentUseCase) Payslip(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, "", domain.ErrPaymentNotFound
	}
	details, err := uc.paymentRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, "", err
	}
	slip := Payslip{Payment: p, Details: details}
	if p.EmployeeID != nil {
		if slip.Employee, err = uc.employeeRepo.GetByID(ctx, *p.EmployeeID); err != nil {
			return nil, "", err
		}
	}

	b, err := uc.payslips.GeneratePayslipPDF(ctx, slip)
	if err != nil {
		return nil, "", fmt.Errorf("desprendible: %w", err)
	}
	return b, fmt.Sprintf("desprendible_%d.pdf", p.ID), nil
}

// Export genera el libro de pagos en Excel, opcionalmente de un solo periodo.
func (uc *PaymentUseCase) Export(ctx context.Context, periodID *int64) ([]byte, string, error) {
	filename := "pagos.xlsx"
	if periodID != nil {
		filename = fmt.Sprintf("pagos_periodo_%d.xlsx", *periodID)
	}
	list, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{PeriodID: periodID})
	if err != nil {
		return nil, "", err
	}
	b, err := uc.exporter.ExportPayments(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("exportar pagos: %w", err)
	}
	return b, filename, nil
}

// apply valida la petición y copia sus datos en p.
func (uc *PaymentUseCase) apply(ctx context.Context, p *entity.Payment, in dto.PaymentRequest) error {
	if in.Amount == nil {
		return domain.Invalid("monto", "es requerido")
	}
	amount := in.Amount.Round(2)
	if amount.IsNegative() {
		return domain.Invalid("monto", "no puede ser negativo")
	}
	if amount.GreaterThan(entity.MaxPaymentAmount) {
		return domain.Invalid("monto", "excede el máximo permitido")
	}
	date, err := dto.ParseDate(in.PaymentDate)
	if err != nil {
		return domain.Invalid("fecha_pago", "formato esperado YYYY-MM-DD")
	}
	method := in.Method
	if method == "" {
		method = uc.defaultMethod
	}
	if !entity.IsValidPaymentMethod(method) {
		return domain.Invalid("metodo_pago", "debe ser transferencia, efectivo o cheque")
	}

	emp, err := uc.findEmployee(ctx, in.EmployeeID, in.EmployeeName)
	if err != nil {
		return err
	}
	if in.PeriodID != nil {
		period, err := uc.periodRepo.GetByID(ctx, *in.PeriodID)
		if err != nil {
			return err
		}
		if period == nil {
			return domain.ErrPeriodNotFound
		}
	}

	empID := emp.ID
	p.EmployeeID = &empID
	p.EmployeeName = emp.Name
	p.PeriodID = in.PeriodID
	p.PaymentDate = date
	p.Amount = amount
	p.Method = method
	p.Notes = in.Notes
	return nil
}

func (uc *PaymentUseCase) findEmployee(ctx context.Context, id *int64, name string) (*entity.Employee, error) {
	if id != nil {
		emp, err := uc.employeeRepo.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrEmployeeNotFound
		}
		return emp, nil
	}
	if name == "" {
		return nil, domain.Invalid("empleado_id", "debe enviar empleado_id o nombre_empleado")
	}
	matches, err := uc.employeeRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, domain.ErrEmployeeNotFound
	case 1:
		return matches[0], nil
	}
	return nil, domain.ErrAmbiguousEmployee
}

// completeDuplicate informa el pago activo que bloqueó la escritura.
func (uc *PaymentUseCase) completeDuplicate(ctx context.Context, err error, p *entity.Payment) error {
	var dup *domain.DuplicatePaymentError
	if !errors.As(err, &dup) || dup.PaymentID != 0 || p.EmployeeID == nil || p.PeriodID == nil {
		return err
	}
	list, lerr := uc.paymentRepo.List(ctx, repository.PaymentFilter{PeriodID: p.PeriodID, EmployeeID: p.EmployeeID})
	if lerr != nil {
		return err
	}
	for _, o := range list {
		if o.ID != p.ID && !o.IsVoided() {
			return &domain.DuplicatePaymentError{PaymentID: o.ID}
		}
	}
	return err
}

func lockPayment(ctx context.Context, repo repository.PaymentRepository, id int64) (*entity.Payment, error) {
	p, err := repo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

func toPaymentResponse(p *entity.Payment, details []*entity.PaymentDetail) dto.PaymentResponse {
	resp := dto.PaymentResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		PeriodID:     p.PeriodID,
		PeriodStart:  dto.FormatDatePtr(p.PeriodStart),
		PeriodEnd:    dto.FormatDatePtr(p.PeriodEnd),
		PaymentDate:  dto.FormatDate(p.PaymentDate),
		Amount:       p.Amount,
		Method:       p.Method,
		Status:       p.Status,
		Notes:        p.Notes,
	}
	if p.PaidAt != nil {
		s := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.PaymentDetailResponse{
			ID:      d.ID,
			Concept: d.Concept,
			Value:   d.Value,
			Kind:    d.Kind,
		})
	}
	return resp
}
