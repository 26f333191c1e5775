package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// IncidentUseCase libro de novedades de nómina.
type IncidentUseCase struct {
	repo         repository.IncidentRepository
	employeeRepo repository.EmployeeRepository
	now          func() time.Time
}

// NewIncidentUseCase construye el caso de uso.
func NewIncidentUseCase(repo repository.IncidentRepository, employeeRepo repository.EmployeeRepository) *IncidentUseCase {
	return &IncidentUseCase{repo: repo, employeeRepo: employeeRepo, now: time.Now}
}

// List novedades filtradas, más recientes primero.
func (uc *IncidentUseCase) List(ctx context.Context, in dto.IncidentFilterRequest) ([]dto.IncidentResponse, error) {
	f, err := toIncidentFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IncidentResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toIncidentResponse(i))
	}
	return out, nil
}

// Report lista filtrada con totales por tipo.
func (uc *IncidentUseCase) Report(ctx context.Context, in dto.IncidentFilterRequest) (*dto.IncidentReportResponse, error) {
	list, err := uc.List(ctx, in)
	if err != nil {
		return nil, err
	}
	resp := &dto.IncidentReportResponse{
		Novedades:    list,
		TotalPorTipo: map[string]decimal.Decimal{},
		Total:        decimal.Zero,
	}
	for _, i := range list {
		resp.TotalPorTipo[i.Type] = resp.TotalPorTipo[i.Type].Add(i.Amount)
		resp.Total = resp.Total.Add(i.Amount)
	}
	return resp, nil
}

func (uc *IncidentUseCase) GetByID(ctx context.Context, id int64) (*dto.IncidentResponse, error) {
	i, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toIncidentResponse(i)
	return &resp, nil
}

// Create registra una novedad. actorID queda como aprobador si se crea ya resuelta.
func (uc *IncidentUseCase) Create(ctx context.Context, actorID int64, in dto.IncidentRequest) (*dto.IncidentResponse, error) {
	i := &entity.Incident{Status: entity.IncidentPending, CreatedAt: uc.now()}
	if err := uc.apply(ctx, i, actorID, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, i.ID)
}

// Update reemplaza los datos de la novedad.
func (uc *IncidentUseCase) Update(ctx context.Context, actorID, id int64, in dto.IncidentRequest) (*dto.IncidentResponse, error) {
	i, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, i, actorID, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func (uc *IncidentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// Approve pendiente → aprobada, registrando quién aprueba.
func (uc *IncidentUseCase) Approve(ctx context.Context, actorID, id int64) (*dto.IncidentResponse, error) {
	return uc.resolve(ctx, actorID, id, entity.IncidentApproved)
}

// Reject pendiente → rechazada.
func (uc *IncidentUseCase) Reject(ctx context.Context, actorID, id int64) (*dto.IncidentResponse, error) {
	return uc.resolve(ctx, actorID, id, entity.IncidentRejected)
}

func (uc *IncidentUseCase) resolve(ctx context.Context, actorID, id int64, to string) (*dto.IncidentResponse, error) {
	i, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.Status != entity.IncidentPending {
		return nil, domain.ErrIncidentNotPending
	}
	i.Status = to
	i.ApprovedBy = &actorID
	if err := uc.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	resp := toIncidentResponse(i)
	return &resp, nil
}

func (uc *IncidentUseCase) apply(ctx context.Context, i *entity.Incident, actorID int64, in dto.IncidentRequest) error {
	if !entity.IsValidIncidentType(in.Type) {
		return domain.Invalid("tipo", "tipo de novedad no válido")
	}
	start, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return domain.Invalid("fecha_inicio", "formato esperado YYYY-MM-DD")
	}
	end, err := dto.ParseDatePtr(in.EndDate)
	if err != nil {
		return domain.Invalid("fecha_fin", "formato esperado YYYY-MM-DD")
	}
	if end != nil && end.Before(start) {
		return domain.Invalid("fecha_fin", "no puede ser anterior a fecha_inicio")
	}
	amount := decimal.Zero
	if in.Amount != nil {
		amount = in.Amount.Round(2)
	}
	if amount.IsNegative() {
		return domain.Invalid("monto", "no puede ser negativo")
	}
	if amount.GreaterThan(entity.MaxIncidentAmount) {
		return domain.Invalid("monto", "excede el máximo permitido")
	}
	status := in.Status
	if status == "" {
		status = i.Status
	}
	switch status {
	case entity.IncidentPending, entity.IncidentApproved, entity.IncidentRejected:
	default:
		return domain.Invalid("estado", "debe ser pendiente, aprobada o rechazada")
	}

	emp, err := uc.employeeRepo.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrEmployeeNotFound
	}

	if status != i.Status {
		if status == entity.IncidentPending {
			i.ApprovedBy = nil
		} else {
			i.ApprovedBy = &actorID
		}
	}
	i.EmployeeID = emp.ID
	i.EmployeeName = emp.Name
	i.Type = in.Type
	i.Description = in.Description
	i.StartDate = start
	i.EndDate = end
	i.Amount = amount
	i.Status = status
	return nil
}

func (uc *IncidentUseCase) get(ctx context.Context, id int64) (*entity.Incident, error) {
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrIncidentNotFound
	}
	return i, nil
}

func toIncidentFilter(in dto.IncidentFilterRequest) (repository.IncidentFilter, error) {
	var f repository.IncidentFilter
	if in.EmployeeID > 0 {
		id := in.EmployeeID
		f.EmployeeID = &id
	}
	if in.Status != "" {
		f.Status = in.Status
	}
	if in.Type != "" {
		if !entity.IsValidIncidentType(in.Type) {
			return f, domain.Invalid("tipo", "tipo de novedad no válido")
		}
		f.Type = in.Type
	}
	var err error
	if f.From, err = dto.ParseDatePtr(&in.From); err != nil {
		return f, domain.Invalid("fecha_inicio", "formato esperado YYYY-MM-DD")
	}
	if f.To, err = dto.ParseDatePtr(&in.To); err != nil {
		return f, domain.Invalid("fecha_fin", "formato esperado YYYY-MM-DD")
	}
	return f, nil
}

func toIncidentResponse(i *entity.Incident) dto.IncidentResponse {
	return dto.IncidentResponse{
		ID:           i.ID,
		EmployeeID:   i.EmployeeID,
		EmployeeName: i.EmployeeName,
		Type:         i.Type,
		Description:  i.Description,
		StartDate:    dto.FormatDate(i.StartDate),
		EndDate:      dto.FormatDatePtr(i.EndDate),
		Amount:       i.Amount,
		Status:       i.Status,
		ApprovedBy:   i.ApprovedBy,
		CreatedAt:    dto.FormatDate(i.CreatedAt),
	}
}
