package liquidation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	notesNew         = "Liquidación automática"
	notesReplacement = "Liquidación automática (reemplazo)"
)

// Options políticas de liquidación que dependen del despliegue.
type Options struct {
	// AllowClosedPeriod permite liquidar sobre periodos cerrados.
	AllowClosedPeriod bool
	// DefaultMethod método de pago cuando la petición no lo indica.
	DefaultMethod string
}

// LiquidationUseCase liquida la nómina de un empleado (o de todos los activos) en un periodo.
// Cada liquidación corre en su propia transacción.
type LiquidationUseCase struct {
	txRunner     TxRunner
	periodRepo   repository.PayPeriodRepository
	employeeRepo repository.EmployeeRepository
	paymentRepo  repository.PaymentRepository
	rules        payroll.Rules
	opts         Options
	log          *logger.Logger
	now          func() time.Time
}

// NewLiquidationUseCase construye el caso de uso. Los repos fuera de txRunner
// son de solo lectura (pool) y se usan para la liquidación masiva y para
// reportar el pago existente tras un conflicto.
func NewLiquidationUseCase(
	txRunner TxRunner,
	periodRepo repository.PayPeriodRepository,
	employeeRepo repository.EmployeeRepository,
	paymentRepo repository.PaymentRepository,
	rules payroll.Rules,
	opts Options,
	log *logger.Logger,
) *LiquidationUseCase {
	if opts.DefaultMethod == "" {
		opts.DefaultMethod = entity.PaymentTransfer
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LiquidationUseCase{
		txRunner:     txRunner,
		periodRepo:   periodRepo,
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
		rules:        rules,
		opts:         opts,
		log:          log.Named("liquidation"),
		now:          time.Now,
	}
}

// employeeRef empleado por ID o, si ID es nil, por nombre exacto.
type employeeRef struct {
	ID   *int64
	Name string
}

type command struct {
	periodID    int64
	employee    employeeRef
	paymentDate time.Time
	method      string
	overwrite   bool
}

// outcome datos de una liquidación confirmada.
type outcome struct {
	payment    *entity.Payment
	employee   *entity.Employee
	period     *entity.PayPeriod
	settlement payroll.Settlement
	incidents  map[string]decimal.Decimal
	replaced   bool
}

// Liquidate liquida un empleado en un periodo.
//
// Orden de validación: periodo existe, empleado existe (y es único si se
// busca por nombre), empleado activo, no hay pago activo o se pidió sobrescribir.
func (uc *LiquidationUseCase) Liquidate(ctx context.Context, in dto.LiquidationRequest) (*dto.LiquidationResponse, error) {
	if in.EmployeeID == nil && in.EmployeeName == "" {
		return nil, domain.Invalid("empleado_id", "debe enviar empleado_id o nombre_empleado")
	}
	cmd, err := uc.newCommand(in.PeriodID, in.PaymentDate, in.Method, in.Overwrite)
	if err != nil {
		return nil, err
	}
	cmd.employee = employeeRef{ID: in.EmployeeID, Name: in.EmployeeName}

	out, err := uc.liquidate(ctx, cmd)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("pago_id", out.payment.ID).
		Int64("empleado_id", out.employee.ID).
		Int64("periodo_id", out.period.ID).
		Bool("reemplazo", out.replaced).
		Str("total_neto", out.settlement.NetPay.StringFixed(2)).
		Msg("nómina liquidada")
	return toLiquidationResponse(out), nil
}

// LiquidatePeriod liquida todos los empleados activos del periodo, uno por
// transacción. Un fallo individual no detiene el lote; cada resultado se reporta.
func (uc *LiquidationUseCase) LiquidatePeriod(ctx context.Context, periodID int64, in dto.BatchLiquidationRequest) (*dto.BatchLiquidationResponse, error) {
	cmd, err := uc.newCommand(periodID, in.PaymentDate, in.Method, in.Overwrite)
	if err != nil {
		return nil, err
	}
	period, err := uc.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, domain.ErrPeriodNotFound
	}
	if err := uc.checkPeriodOpen(period); err != nil {
		return nil, err
	}

	employees, err := uc.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.BatchLiquidationResponse{
		PeriodID: periodID,
		Results:  make([]dto.BatchLiquidationResult, 0, len(employees)),
	}
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := emp.ID
		c := cmd
		c.employee = employeeRef{ID: &id}

		res := dto.BatchLiquidationResult{EmployeeID: emp.ID, Name: emp.Name}
		out, err := uc.liquidate(ctx, c)
		if err != nil {
			res.Code = domain.Code(err)
			res.Error = err.Error()
			var dup *domain.DuplicatePaymentError
			if errors.As(err, &dup) && dup.PaymentID != 0 {
				res.PaymentID = &dup.PaymentID
			}
			if res.Code == domain.CodeInternal {
				uc.log.Error().Err(err).Int64("empleado_id", emp.ID).Int64("periodo_id", periodID).Msg("liquidación masiva: error inesperado")
				res.Error = "error interno al liquidar"
			} else {
				uc.log.Warn().Err(err).Int64("empleado_id", emp.ID).Int64("periodo_id", periodID).Msg("liquidación masiva: empleado omitido")
			}
			resp.Failed++
		} else {
			net := out.settlement.NetPay
			res.OK = true
			res.PaymentID = &out.payment.ID
			res.NetPay = &net
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, res)
	}

	uc.log.Info().
		Int64("periodo_id", periodID).
		Int("exitosos", resp.Succeeded).
		Int("fallidos", resp.Failed).
		Msg("liquidación masiva terminada")
	return resp, nil
}

func (uc *LiquidationUseCase) newCommand(periodID int64, date *string, method string, overwrite bool) (command, error) {
	if periodID <= 0 {
		return command{}, domain.Invalid("periodo_id", "es requerido")
	}
	payDate, err := dto.ParseDatePtr(date)
	if err != nil {
		return command{}, domain.Invalid("fecha_pago", "formato esperado YYYY-MM-DD")
	}
	if payDate == nil {
		y, m, d := uc.now().UTC().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		payDate = &today
	}
	if method == "" {
		method = uc.opts.DefaultMethod
	}
	if !entity.IsValidPaymentMethod(method) {
		return command{}, domain.Invalid("metodo_pago", "debe ser transferencia, efectivo o cheque")
	}
	return command{periodID: periodID, paymentDate: *payDate, method: method, overwrite: overwrite}, nil
}

func (uc *LiquidationUseCase) checkPeriodOpen(p *entity.PayPeriod) error {
	if p.IsClosed() && !uc.opts.AllowClosedPeriod {
		return domain.ErrPeriodClosed
	}
	return nil
}

// liquidate ejecuta lecturas, cálculo y escritura en una sola transacción.
func (uc *LiquidationUseCase) liquidate(ctx context.Context, cmd command) (*outcome, error) {
	var out *outcome
	err := uc.txRunner.RunLiquidation(ctx, func(
		periodRepo repository.PayPeriodRepository,
		employeeRepo repository.EmployeeRepository,
		parameterRepo repository.PayrollParameterRepository,
		incidentRepo repository.IncidentRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		period, err := periodRepo.GetByID(ctx, cmd.periodID)
		if err != nil {
			return err
		}
		if period == nil {
			return domain.ErrPeriodNotFound
		}
		if err := uc.checkPeriodOpen(period); err != nil {
			return err
		}

		emp, err := resolveEmployee(ctx, employeeRepo, cmd.employee)
		if err != nil {
			return err
		}
		if !emp.IsActive() {
			return domain.ErrEmployeeInactive
		}

		existing, err := paymentRepo.FindActiveForUpdate(ctx, emp.ID, period.ID)
		if err != nil {
			return err
		}
		if existing != nil && !cmd.overwrite {
			return &domain.DuplicatePaymentError{PaymentID: existing.ID}
		}

		values, err := parameterRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		incidents, err := incidentRepo.SumApprovedByType(ctx, emp.ID, period.StartDate, period.EndDate)
		if err != nil {
			return err
		}

		settlement := uc.rules.Compute(payroll.Input{
			BaseSalary: emp.BaseSalary,
			Incidents:  incidents,
			Parameters: payroll.ParametersFrom(values),
		})

		payment := existing
		replaced := existing != nil
		if replaced {
			payment.PaymentDate = cmd.paymentDate
			payment.Amount = settlement.NetPay
			payment.Method = cmd.method
			payment.Status = entity.PaymentPending
			payment.EmployeeName = emp.Name
			payment.Notes = uc.notes(notesReplacement)
			if err := paymentRepo.Update(ctx, payment); err != nil {
				return err
			}
		} else {
			empID, periodID := emp.ID, period.ID
			payment = &entity.Payment{
				EmployeeID:   &empID,
				EmployeeName: emp.Name,
				PeriodID:     &periodID,
				PaymentDate:  cmd.paymentDate,
				Amount:       settlement.NetPay,
				Method:       cmd.method,
				Status:       entity.PaymentPending,
				Notes:        uc.notes(notesNew),
			}
			if err := paymentRepo.Create(ctx, payment); err != nil {
				return err
			}
		}

		if err := paymentRepo.ReplaceDetails(ctx, payment.ID, settlement.Details(payment.ID)); err != nil {
			return err
		}

		out = &outcome{
			payment:    payment,
			employee:   emp,
			period:     period,
			settlement: settlement,
			incidents:  incidents,
			replaced:   replaced,
		}
		return nil
	})
	if err != nil {
		return nil, uc.completeDuplicate(ctx, err, cmd)
	}
	return out, nil
}

// completeDuplicate: si el índice único rechazó el INSERT (otra liquidación
// concurrente ganó), busca fuera de la transacción el pago ganador.
func (uc *LiquidationUseCase) completeDuplicate(ctx context.Context, err error, cmd command) error {
	var dup *domain.DuplicatePaymentError
	if !errors.As(err, &dup) || dup.PaymentID != 0 {
		return err
	}
	empID, ok := uc.resolveIDForLookup(ctx, cmd.employee)
	if !ok {
		return err
	}
	periodID := cmd.periodID
	payments, lerr := uc.paymentRepo.List(ctx, repository.PaymentFilter{PeriodID: &periodID, EmployeeID: &empID})
	if lerr != nil {
		return err
	}
	for _, p := range payments {
		if !p.IsVoided() {
			return &domain.DuplicatePaymentError{PaymentID: p.ID}
		}
	}
	return err
}

func (uc *LiquidationUseCase) resolveIDForLookup(ctx context.Context, ref employeeRef) (int64, bool) {
	if ref.ID != nil {
		return *ref.ID, true
	}
	emp, err := resolveEmployee(ctx, uc.employeeRepo, ref)
	if err != nil {
		return 0, false
	}
	return emp.ID, true
}

func (uc *LiquidationUseCase) notes(base string) string {
	return fmt.Sprintf("%s [reglas %s]", base, uc.rules.Version)
}

// resolveEmployee por ID, o por nombre exacto exigiendo una sola coincidencia.
func resolveEmployee(ctx context.Context, repo repository.EmployeeRepository, ref employeeRef) (*entity.Employee, error) {
	if ref.ID != nil {
		emp, err := repo.GetByID(ctx, *ref.ID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrEmployeeNotFound
		}
		return emp, nil
	}
	matches, err := repo.FindByName(ctx, ref.Name)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, domain.ErrEmployeeNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, domain.ErrAmbiguousEmployee
	}
}

func toLiquidationResponse(o *outcome) *dto.LiquidationResponse {
	s := o.settlement
	earnings := s.EarningsMap()
	earnings["total"] = s.TotalEarnings
	deductions := s.DeductionsMap()
	deductions["total"] = s.TotalDeductions

	types := make([]string, 0, len(o.incidents))
	for t := range o.incidents {
		types = append(types, t)
	}
	sort.Strings(types)
	incidents := make([]dto.IncidentTotalDTO, 0, len(types))
	for _, t := range types {
		incidents = append(incidents, dto.IncidentTotalDTO{Type: t, Total: o.incidents[t]})
	}

	return &dto.LiquidationResponse{
		Message: "Nómina liquidada con éxito",
		Payment: dto.LiquidatedPaymentDTO{
			ID:          o.payment.ID,
			PaymentDate: dto.FormatDate(o.payment.PaymentDate),
			Method:      o.payment.Method,
			Status:      o.payment.Status,
			NetPay:      s.NetPay,
			Replaced:    o.replaced,
		},
		Employee: dto.LiquidatedEmployeeDTO{
			ID:       o.employee.ID,
			Name:     o.employee.Name,
			Document: o.employee.Document,
			Email:    o.employee.Email,
		},
		Period: dto.LiquidatedPeriodDTO{
			ID:     o.period.ID,
			Start:  dto.FormatDate(o.period.StartDate),
			End:    dto.FormatDate(o.period.EndDate),
			Status: o.period.Status,
		},
		Breakdown: dto.BreakdownDTO{
			BaseSalary:   s.BaseSalary,
			Earnings:     earnings,
			Deductions:   deductions,
			Subtotal:     s.TotalEarnings,
			NetPay:       s.NetPay,
			SubsidyApply: s.TransportSubsidyEligible,
			RulesVersion: s.RulesVersion,
		},
		Incidents: incidents,
	}
}
