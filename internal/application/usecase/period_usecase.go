package usecase

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// PeriodUseCase registro de periodos de nómina.
type PeriodUseCase struct {
	repo repository.PayPeriodRepository
}

// NewPeriodUseCase construye el caso de uso.
func NewPeriodUseCase(repo repository.PayPeriodRepository) *PeriodUseCase {
	return &PeriodUseCase{repo: repo}
}

// List periodos, el más reciente primero.
func (uc *PeriodUseCase) List(ctx context.Context) ([]dto.PayPeriodResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayPeriodResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPeriodResponse(p))
	}
	return out, nil
}

func (uc *PeriodUseCase) GetByID(ctx context.Context, id int64) (*dto.PayPeriodResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPeriodResponse(p)
	return &resp, nil
}

// Create valida inicio ≤ fin; el estado por defecto es abierto.
func (uc *PeriodUseCase) Create(ctx context.Context, in dto.PayPeriodRequest) (*dto.PayPeriodResponse, error) {
	start, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, domain.Invalid("fecha_inicio", "formato esperado YYYY-MM-DD")
	}
	end, err := dto.ParseDate(in.EndDate)
	if err != nil {
		return nil, domain.Invalid("fecha_fin", "formato esperado YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, domain.Invalid("fecha_fin", "no puede ser anterior a fecha_inicio")
	}
	status := in.Status
	if status == "" {
		status = entity.PeriodOpen
	}
	if status != entity.PeriodOpen && status != entity.PeriodClosed {
		return nil, domain.Invalid("estado", "debe ser abierto o cerrado")
	}

	p := &entity.PayPeriod{StartDate: start, EndDate: end, Status: status}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := toPeriodResponse(p)
	return &resp, nil
}

// Close abierto → cerrado.
func (uc *PeriodUseCase) Close(ctx context.Context, id int64) (*dto.PayPeriodResponse, error) {
	return uc.transition(ctx, id, entity.PeriodClosed)
}

// Reopen cerrado → abierto.
func (uc *PeriodUseCase) Reopen(ctx context.Context, id int64) (*dto.PayPeriodResponse, error) {
	return uc.transition(ctx, id, entity.PeriodOpen)
}

func (uc *PeriodUseCase) transition(ctx context.Context, id int64, to string) (*dto.PayPeriodResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == to {
		return nil, domain.ErrPeriodAlreadyInState
	}
	if err := uc.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	p.Status = to
	resp := toPeriodResponse(p)
	return &resp, nil
}

func (uc *PeriodUseCase) get(ctx context.Context, id int64) (*entity.PayPeriod, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPeriodNotFound
	}
	return p, nil
}

func toPeriodResponse(p *entity.PayPeriod) dto.PayPeriodResponse {
	return dto.PayPeriodResponse{
		ID:        p.ID,
		StartDate: dto.FormatDate(p.StartDate),
		EndDate:   dto.FormatDate(p.EndDate),
		Status:    p.Status,
	}
}
