package liquidation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Nomina-api/internal/application/apptest"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/liquidation"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: periodo 2025-08-01..2025-08-15 abierto, parámetros por defecto.
// Ana (3.800.000, sin novedades) y Luis (1.200.000 + 200.000 horas extra
// aprobadas en el periodo).
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	db       *apptest.MemDB
	uc       *liquidation.LiquidationUseCase
	periodID int64
	roleID   int64
	ana      int64
	luis     int64
}

func day(s string) time.Time {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T, opts liquidation.Options) *fixture {
	t.Helper()
	db := apptest.NewMemDB()
	for k, v := range map[string]string{
		payroll.ParamHealthPct:        "4",
		payroll.ParamPensionPct:       "4",
		payroll.ParamRiskPct:          "0.5",
		payroll.ParamTransportSubsidy: "140606",
		payroll.ParamMinimumWage:      "1300000",
	} {
		db.SetParam(k, dec(v))
	}

	f := &fixture{db: db}
	f.periodID = db.AddPeriod(entity.PayPeriod{StartDate: day("2025-08-01"), EndDate: day("2025-08-15")})
	f.roleID = db.AddJobRole(entity.JobRole{Name: "Analista", BaseSalary: dec("3800000")})
	f.ana = db.AddEmployee(entity.Employee{
		Name: "Ana Gómez", Document: "1001", JobRoleID: f.roleID,
		HireDate: day("2024-01-10"), BaseSalary: dec("3800000"),
	})
	f.luis = db.AddEmployee(entity.Employee{
		Name: "Luis Pérez", Document: "1002", JobRoleID: f.roleID,
		HireDate: day("2024-03-01"), BaseSalary: dec("1200000"),
	})
	db.AddIncident(entity.Incident{
		EmployeeID: f.luis, Type: entity.IncidentOvertime, StartDate: day("2025-08-05"),
		Amount: dec("200000"), Status: entity.IncidentApproved,
	})

	f.uc = liquidation.NewLiquidationUseCase(
		db.TxRunner(), db.Periods(), db.Employees(), db.PaymentsRepo(),
		payroll.DefaultRules(), opts, nil,
	)
	return f
}

func (f *fixture) request(empID int64) dto.LiquidationRequest {
	id := empID
	date := "2025-08-16"
	return dto.LiquidationRequest{PeriodID: f.periodID, EmployeeID: &id, PaymentDate: &date}
}

func duplicateID(t *testing.T, err error) int64 {
	t.Helper()
	var dup *domain.DuplicatePaymentError
	require.True(t, errors.As(err, &dup), "se esperaba DuplicatePaymentError, fue %v", err)
	return dup.PaymentID
}

// ── Liquidación individual ───────────────────────────────────────────────────

func TestLiquidate_SalarioAltoSinNovedades(t *testing.T) {
	f := newFixture(t, liquidation.Options{})

	resp, err := f.uc.Liquidate(context.Background(), f.request(f.ana))
	require.NoError(t, err)

	assert.Equal(t, "Nómina liquidada con éxito", resp.Message)
	assert.True(t, dec("3477000").Equal(resp.Payment.NetPay), "neto: %s", resp.Payment.NetPay)
	assert.Equal(t, entity.PaymentPending, resp.Payment.Status)
	assert.Equal(t, entity.PaymentTransfer, resp.Payment.Method)
	assert.Equal(t, "2025-08-16", resp.Payment.PaymentDate)
	assert.False(t, resp.Payment.Replaced)
	assert.False(t, resp.Breakdown.SubsidyApply)
	assert.True(t, dec("323000").Equal(resp.Breakdown.Deductions["total"]))
	assert.True(t, resp.Breakdown.Earnings[payroll.KeyTransportSubsidy].IsZero())
	assert.Equal(t, payroll.RulesVersion, resp.Breakdown.RulesVersion)
	assert.Empty(t, resp.Incidents)

	payments := f.db.Payments(f.ana, f.periodID)
	require.Len(t, payments, 1)
	assert.Equal(t, resp.Payment.ID, payments[0].ID)
	assert.Equal(t, "Liquidación automática [reglas "+payroll.RulesVersion+"]", payments[0].Notes)
	assert.Equal(t, "Ana Gómez", payments[0].EmployeeName)
	assert.Len(t, f.db.Details(resp.Payment.ID), 4)
	assert.Equal(t, 1, f.db.Commits)
}

func TestLiquidate_SalarioBajoConAuxilioYHorasExtra(t *testing.T) {
	f := newFixture(t, liquidation.Options{})

	resp, err := f.uc.Liquidate(context.Background(), f.request(f.luis))
	require.NoError(t, err)

	assert.True(t, resp.Breakdown.SubsidyApply)
	assert.True(t, dec("140606").Equal(resp.Breakdown.Earnings[payroll.KeyTransportSubsidy]))
	assert.True(t, dec("200000").Equal(resp.Breakdown.Earnings[payroll.KeyOvertime]))
	assert.True(t, dec("1540606").Equal(resp.Breakdown.Subtotal))
	assert.True(t, dec("1438606").Equal(resp.Payment.NetPay))
	require.Len(t, resp.Incidents, 1)
	assert.Equal(t, entity.IncidentOvertime, resp.Incidents[0].Type)

	// salario + horas extra + auxilio + salud + pensión + arl
	assert.Len(t, f.db.Details(resp.Payment.ID), 6)
}

func TestLiquidate_PorNombre(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	req := f.request(f.ana)
	req.EmployeeID = nil
	req.EmployeeName = "ana gómez"

	resp, err := f.uc.Liquidate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, f.ana, resp.Employee.ID)
}

func TestLiquidate_SegundaVezEsConflictoConPagoExistente(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	ctx := context.Background()

	first, err := f.uc.Liquidate(ctx, f.request(f.ana))
	require.NoError(t, err)

	_, err = f.uc.Liquidate(ctx, f.request(f.ana))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, first.Payment.ID, duplicateID(t, err))
	assert.Len(t, f.db.Payments(f.ana, f.periodID), 1)
	assert.Equal(t, 1, f.db.Rollbacks)
}

func TestLiquidate_SobrescribirReemplazaEnSitio(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	ctx := context.Background()

	first, err := f.uc.Liquidate(ctx, f.request(f.ana))
	require.NoError(t, err)

	f.db.AddIncident(entity.Incident{
		EmployeeID: f.ana, Type: entity.IncidentBonus, StartDate: day("2025-08-10"),
		Amount: dec("100000"), Status: entity.IncidentApproved,
	})
	req := f.request(f.ana)
	req.Overwrite = true
	req.Method = entity.PaymentCash

	second, err := f.uc.Liquidate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Payment.ID, second.Payment.ID)
	assert.True(t, second.Payment.Replaced)
	// 3.900.000 - 8.5% de 3.800.000
	assert.True(t, dec("3577000").Equal(second.Payment.NetPay), "neto: %s", second.Payment.NetPay)

	payments := f.db.Payments(f.ana, f.periodID)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentCash, payments[0].Method)
	assert.Contains(t, payments[0].Notes, "(reemplazo)")
	assert.Len(t, f.db.Details(first.Payment.ID), 5)
	assert.Equal(t, 5, f.db.DetailCount())
}

func TestLiquidate_SobrescribirVuelvePendienteYConservaPagadoEn(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	empID, periodID := f.ana, f.periodID
	paidAt := day("2025-08-16")
	existing := f.db.AddPayment(entity.Payment{
		EmployeeID: &empID, PeriodID: &periodID, EmployeeName: "Ana Gómez",
		PaymentDate: day("2025-08-16"), Amount: dec("1"), Method: entity.PaymentTransfer,
		Status: entity.PaymentPaid, PaidAt: &paidAt,
	})

	req := f.request(f.ana)
	req.Overwrite = true
	resp, err := f.uc.Liquidate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, existing, resp.Payment.ID)

	p := f.db.Payments(f.ana, f.periodID)[0]
	assert.Equal(t, entity.PaymentPending, p.Status)
	require.NotNil(t, p.PaidAt)
	assert.True(t, paidAt.Equal(*p.PaidAt))
}

func TestLiquidate_PagoAnuladoNoBloquea(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	empID, periodID := f.ana, f.periodID
	f.db.AddPayment(entity.Payment{
		EmployeeID: &empID, PeriodID: &periodID, PaymentDate: day("2025-08-16"),
		Amount: dec("1"), Method: entity.PaymentTransfer, Status: entity.PaymentVoided,
	})

	_, err := f.uc.Liquidate(context.Background(), f.request(f.ana))
	require.NoError(t, err)
	assert.Len(t, f.db.Payments(f.ana, f.periodID), 2)
}

func TestLiquidate_SoloNovedadesAprobadasDentroDelPeriodo(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	base := entity.Incident{EmployeeID: f.ana, Type: entity.IncidentBonus, Amount: dec("500000")}

	pending := base
	pending.Status, pending.StartDate = entity.IncidentPending, day("2025-08-05")
	rejected := base
	rejected.Status, rejected.StartDate = entity.IncidentRejected, day("2025-08-05")
	before := base
	before.Status, before.StartDate, before.EndDate = entity.IncidentApproved, day("2025-07-01"), dayPtr("2025-07-31")
	after := base
	after.Status, after.StartDate = entity.IncidentApproved, day("2025-08-16")
	// Empieza antes y termina dentro: sí cuenta.
	spanning := base
	spanning.Status, spanning.StartDate, spanning.EndDate = entity.IncidentApproved, day("2025-07-28"), dayPtr("2025-08-02")
	spanning.Amount = dec("10000")

	for _, i := range []entity.Incident{pending, rejected, before, after, spanning} {
		f.db.AddIncident(i)
	}

	resp, err := f.uc.Liquidate(context.Background(), f.request(f.ana))
	require.NoError(t, err)
	assert.True(t, dec("10000").Equal(resp.Breakdown.Earnings[payroll.KeyBonuses]), "bonificaciones: %s", resp.Breakdown.Earnings[payroll.KeyBonuses])
	assert.True(t, dec("3487000").Equal(resp.Payment.NetPay))
}

// ── Validaciones ─────────────────────────────────────────────────────────────

func TestLiquidate_Validaciones(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, r *dto.LiquidationRequest)
		want   error
	}{
		{
			name:   "sin empleado",
			mutate: func(_ *fixture, r *dto.LiquidationRequest) { r.EmployeeID = nil },
			want:   domain.ErrInvalidInput,
		},
		{
			name:   "periodo inexistente",
			mutate: func(_ *fixture, r *dto.LiquidationRequest) { r.PeriodID = 999 },
			want:   domain.ErrPeriodNotFound,
		},
		{
			name: "empleado inexistente",
			mutate: func(_ *fixture, r *dto.LiquidationRequest) {
				id := int64(999)
				r.EmployeeID = &id
			},
			want: domain.ErrEmployeeNotFound,
		},
		{
			name: "nombre inexistente",
			mutate: func(_ *fixture, r *dto.LiquidationRequest) {
				r.EmployeeID = nil
				r.EmployeeName = "Nadie"
			},
			want: domain.ErrEmployeeNotFound,
		},
		{
			name: "nombre ambiguo",
			mutate: func(f *fixture, r *dto.LiquidationRequest) {
				f.db.AddEmployee(entity.Employee{
					Name: "Ana Gómez", Document: "2001", JobRoleID: f.roleID,
					HireDate: day("2025-01-01"), BaseSalary: dec("2000000"),
				})
				r.EmployeeID = nil
				r.EmployeeName = "Ana Gómez"
			},
			want: domain.ErrAmbiguousEmployee,
		},
		{
			name: "empleado retirado",
			mutate: func(f *fixture, r *dto.LiquidationRequest) {
				id := f.db.AddEmployee(entity.Employee{
					Name: "Retirado", Document: "3001", JobRoleID: f.roleID,
					HireDate: day("2020-01-01"), TerminationDate: dayPtr("2025-06-30"),
					BaseSalary: dec("2000000"),
				})
				r.EmployeeID = &id
			},
			want: domain.ErrEmployeeInactive,
		},
		{
			name: "fecha inválida",
			mutate: func(_ *fixture, r *dto.LiquidationRequest) {
				s := "16/08/2025"
				r.PaymentDate = &s
			},
			want: domain.ErrInvalidInput,
		},
		{
			name:   "método inválido",
			mutate: func(_ *fixture, r *dto.LiquidationRequest) { r.Method = "bitcoin" },
			want:   domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, liquidation.Options{})
			req := f.request(f.ana)
			tt.mutate(f, &req)

			_, err := f.uc.Liquidate(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "error: %v", err)
			assert.Equal(t, 0, f.db.PaymentCount())
		})
	}
}

func TestLiquidate_PeriodoCerrado(t *testing.T) {
	t.Run("rechazado por defecto", func(t *testing.T) {
		f := newFixture(t, liquidation.Options{})
		require.NoError(t, f.db.Periods().UpdateStatus(context.Background(), f.periodID, entity.PeriodClosed))

		_, err := f.uc.Liquidate(context.Background(), f.request(f.ana))
		assert.True(t, errors.Is(err, domain.ErrPeriodClosed))
		assert.Equal(t, domain.CodeInvalidState, domain.Code(err))
	})

	t.Run("permitido por configuración", func(t *testing.T) {
		f := newFixture(t, liquidation.Options{AllowClosedPeriod: true})
		require.NoError(t, f.db.Periods().UpdateStatus(context.Background(), f.periodID, entity.PeriodClosed))

		resp, err := f.uc.Liquidate(context.Background(), f.request(f.ana))
		require.NoError(t, err)
		assert.Equal(t, entity.PeriodClosed, resp.Period.Status)
	})
}

func TestLiquidate_FechaPorDefectoYMetodoConfigurado(t *testing.T) {
	f := newFixture(t, liquidation.Options{DefaultMethod: entity.PaymentCheck})
	req := f.request(f.ana)
	req.PaymentDate = nil

	resp, err := f.uc.Liquidate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format(dto.DateLayout), resp.Payment.PaymentDate)
	assert.Equal(t, entity.PaymentCheck, resp.Payment.Method)
}

// ── Atomicidad y concurrencia ────────────────────────────────────────────────

func TestLiquidate_FalloAMitadNoDejaEscriturasParciales(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	f.db.FailOn = "ReplaceDetails"

	_, err := f.uc.Liquidate(context.Background(), f.request(f.ana))
	require.ErrorIs(t, err, apptest.ErrInjected)
	assert.Equal(t, 0, f.db.PaymentCount())
	assert.Equal(t, 0, f.db.DetailCount())
	assert.Equal(t, 1, f.db.Rollbacks)
}

func TestLiquidate_FalloAlSobrescribirConservaLoAnterior(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	ctx := context.Background()
	first, err := f.uc.Liquidate(ctx, f.request(f.ana))
	require.NoError(t, err)

	f.db.FailOn = "ReplaceDetails"
	req := f.request(f.ana)
	req.Overwrite = true
	req.Method = entity.PaymentCash
	_, err = f.uc.Liquidate(ctx, req)
	require.Error(t, err)

	p := f.db.Payments(f.ana, f.periodID)[0]
	assert.Equal(t, entity.PaymentTransfer, p.Method)
	assert.Len(t, f.db.Details(first.Payment.ID), 4)
}

// Otra liquidación confirma entre la lectura y el INSERT: el índice único
// rechaza la segunda y se informa el pago ganador.
func TestLiquidate_CarreraDevuelveElPagoGanador(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	var winner int64
	f.db.OnBegin = func(db *apptest.MemDB) {
		empID, periodID := f.ana, f.periodID
		winner = db.AddPayment(entity.Payment{
			EmployeeID: &empID, PeriodID: &periodID, PaymentDate: day("2025-08-16"),
			Amount: dec("3477000"), Method: entity.PaymentTransfer, Status: entity.PaymentPending,
		})
	}

	_, err := f.uc.Liquidate(context.Background(), f.request(f.ana))
	require.Error(t, err)
	assert.Equal(t, winner, duplicateID(t, err))
	assert.Len(t, f.db.Payments(f.ana, f.periodID), 1)
}

// ── Liquidación masiva ───────────────────────────────────────────────────────

func TestLiquidatePeriod_ContinuaTrasFallos(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	ctx := context.Background()
	first, err := f.uc.Liquidate(ctx, f.request(f.ana))
	require.NoError(t, err)
	f.db.AddEmployee(entity.Employee{
		Name: "Retirada", Document: "4001", JobRoleID: f.roleID,
		HireDate: day("2020-01-01"), TerminationDate: dayPtr("2025-01-31"), BaseSalary: dec("2000000"),
	})

	resp, err := f.uc.LiquidatePeriod(ctx, f.periodID, dto.BatchLiquidationRequest{})
	require.NoError(t, err)

	assert.Equal(t, f.periodID, resp.PeriodID)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2, "solo empleados activos")

	byEmployee := map[int64]dto.BatchLiquidationResult{}
	for _, r := range resp.Results {
		byEmployee[r.EmployeeID] = r
	}
	ana := byEmployee[f.ana]
	assert.False(t, ana.OK)
	assert.Equal(t, domain.CodeConflict, ana.Code)
	require.NotNil(t, ana.PaymentID)
	assert.Equal(t, first.Payment.ID, *ana.PaymentID)

	luis := byEmployee[f.luis]
	assert.True(t, luis.OK)
	require.NotNil(t, luis.NetPay)
	assert.True(t, dec("1438606").Equal(*luis.NetPay))
}

func TestLiquidatePeriod_ErrorInternoSeOculta(t *testing.T) {
	f := newFixture(t, liquidation.Options{})
	f.db.FailOn = "Create"

	resp, err := f.uc.LiquidatePeriod(context.Background(), f.periodID, dto.BatchLiquidationRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Failed)
	for _, r := range resp.Results {
		assert.Equal(t, domain.CodeInternal, r.Code)
		assert.Equal(t, "error interno al liquidar", r.Error)
	}
	assert.Equal(t, 0, f.db.PaymentCount())
}

func TestLiquidatePeriod_PeriodoInvalido(t *testing.T) {
	f := newFixture(t, liquidation.Options{})

	_, err := f.uc.LiquidatePeriod(context.Background(), 999, dto.BatchLiquidationRequest{})
	assert.ErrorIs(t, err, domain.ErrPeriodNotFound)

	require.NoError(t, f.db.Periods().UpdateStatus(context.Background(), f.periodID, entity.PeriodClosed))
	_, err = f.uc.LiquidatePeriod(context.Background(), f.periodID, dto.BatchLiquidationRequest{})
	assert.ErrorIs(t, err, domain.ErrPeriodClosed)
}
