// Package analytics contiene los casos de uso del tablero de nómina.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

const monthsInChart = 12

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var titleES = cases.Title(language.Spanish)

// DashboardUseCase estadísticas del tablero.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary conteos generales. Las siete consultas corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var (
		out  dto.DashboardSummaryDTO
		last *time.Time
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Employees, err = uc.repo.CountEmployees(gctx)
		return wrap("empleados", err)
	})
	g.Go(func() (err error) {
		out.EmployeeUsers, err = uc.repo.CountUsersByRole(gctx, entity.RoleEmployee)
		return wrap("usuarios", err)
	})
	g.Go(func() (err error) {
		out.Admins, err = uc.repo.CountUsersByRole(gctx, entity.RoleAdmin)
		return wrap("admins", err)
	})
	g.Go(func() (err error) {
		out.MonthPayments, err = uc.repo.SumPaymentsBetween(gctx, monthStart, monthEnd)
		return wrap("pagos del mes", err)
	})
	g.Go(func() (err error) {
		last, err = uc.repo.LastPaymentDate(gctx)
		return wrap("último pago", err)
	})
	g.Go(func() (err error) {
		out.PendingIncidents, err = uc.repo.CountIncidentsByStatus(gctx, entity.IncidentPending)
		return wrap("novedades pendientes", err)
	})
	g.Go(func() (err error) {
		out.ApprovedIncidents, err = uc.repo.CountIncidentsByStatus(gctx, entity.IncidentApproved)
		return wrap("novedades aprobadas", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.MonthPayments = out.MonthPayments.Round(2)
	out.LastPaymentDate = dto.FormatDatePtr(last)
	return &out, nil
}

// MonthlyPayments totales de los últimos 12 meses (incluido el actual), del
// más antiguo al más reciente. Los meses sin pagos aparecen en cero.
func (uc *DashboardUseCase) MonthlyPayments(ctx context.Context) ([]dto.MonthlyPaymentsDTO, error) {
	now := uc.now()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := current.AddDate(0, -(monthsInChart - 1), 0)

	totals, err := uc.repo.MonthlyPaymentTotals(ctx, since)
	if err != nil {
		return nil, wrap("pagos mensuales", err)
	}
	byMonth := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		byMonth[t.Month.Format("2006-01")] = t.Total
	}

	out := make([]dto.MonthlyPaymentsDTO, 0, monthsInChart)
	for m := since; !m.After(current); m = m.AddDate(0, 1, 0) {
		out = append(out, dto.MonthlyPaymentsDTO{
			MonthNum: int(m.Month()),
			Month:    shortMonth(m.Month()),
			Label:    monthLabel(m),
			Total:    byMonth[m.Format("2006-01")].Round(2),
		})
	}
	return out, nil
}

// HeadcountByJobRole empleados por cargo.
func (uc *DashboardUseCase) HeadcountByJobRole(ctx context.Context) ([]dto.HeadcountDTO, error) {
	rows, err := uc.repo.HeadcountByJobRole(ctx)
	if err != nil {
		return nil, wrap("empleados por cargo", err)
	}
	out := make([]dto.HeadcountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.HeadcountDTO{JobRole: r.JobRole, Total: r.Total})
	}
	return out, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}

// shortMonth ej: "Ene".
func shortMonth(m time.Month) string {
	return titleES.String(monthNames[m-1][:3])
}

// monthLabel ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", titleES.String(monthNames[t.Month()-1]), t.Year())
}
