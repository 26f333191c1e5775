package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// EmployeeUseCase directorio de empleados.
type EmployeeUseCase struct {
	repo        repository.EmployeeRepository
	jobRoleRepo repository.JobRoleRepository
	paymentRepo repository.PaymentRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	repo repository.EmployeeRepository,
	jobRoleRepo repository.JobRoleRepository,
	paymentRepo repository.PaymentRepository,
) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, jobRoleRepo: jobRoleRepo, paymentRepo: paymentRepo}
}

// List todos los empleados con el nombre de su cargo.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// GetByID obtiene un empleado.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

// Create registra un empleado. El estado se deriva de la fecha de retiro.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	e := &entity.Employee{}
	if err := uc.apply(ctx, e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, e.ID)
}

// Update reemplaza los datos del empleado.
func (uc *EmployeeUseCase) Update(ctx context.Context, id int64, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if err := uc.apply(ctx, e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un empleado sin pagos registrados. Con historial, se debe
// registrar la fecha de retiro.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) error {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrEmployeeNotFound
	}
	n, err := uc.paymentRepo.CountByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrEmployeeHasHistory
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *EmployeeUseCase) apply(ctx context.Context, e *entity.Employee, in dto.EmployeeRequest) error {
	name := strings.TrimSpace(in.Name)
	document := strings.TrimSpace(in.Document)
	if name == "" {
		return domain.Invalid("nombre_empleado", "es requerido")
	}
	if document == "" {
		return domain.Invalid("documento", "es requerido")
	}
	salary := in.BaseSalary.Round(2)
	if !salary.IsPositive() {
		return domain.Invalid("salario_base", "debe ser mayor que 0")
	}
	if salary.GreaterThan(entity.MaxBaseSalary) {
		return domain.Invalid("salario_base", "excede el máximo permitido")
	}
	hire, err := dto.ParseDate(in.HireDate)
	if err != nil {
		return domain.Invalid("fecha_ingreso", "formato esperado YYYY-MM-DD")
	}
	termination, err := dto.ParseDatePtr(in.TerminationDate)
	if err != nil {
		return domain.Invalid("fecha_retiro", "formato esperado YYYY-MM-DD")
	}
	if termination != nil && termination.Before(hire) {
		return domain.Invalid("fecha_retiro", "no puede ser anterior a la fecha de ingreso")
	}
	if in.Status == entity.EmployeeInactive && termination == nil {
		return domain.Invalid("estado", "un empleado inactivo requiere fecha_retiro")
	}

	role, err := uc.resolveJobRole(ctx, in.JobRoleID, in.JobRoleName)
	if err != nil {
		return err
	}

	e.Name = name
	e.Document = document
	e.Email = strings.TrimSpace(in.Email)
	e.Phone = in.Phone
	e.Address = in.Address
	e.HireDate = hire
	e.TerminationDate = termination
	e.JobRoleID = role.ID
	e.JobRoleName = role.Name
	e.BaseSalary = salary
	e.HealthInsurer = in.HealthInsurer
	e.PensionFund = in.PensionFund
	e.RiskInsurer = in.RiskInsurer
	e.DeriveStatus()
	return nil
}

// resolveJobRole por ID o por nombre exacto; nunca crea cargos.
func (uc *EmployeeUseCase) resolveJobRole(ctx context.Context, id *int64, name string) (*entity.JobRole, error) {
	var (
		role *entity.JobRole
		err  error
	)
	switch {
	case id != nil:
		role, err = uc.jobRoleRepo.GetByID(ctx, *id)
	case strings.TrimSpace(name) != "":
		role, err = uc.jobRoleRepo.GetByName(ctx, strings.TrimSpace(name))
	default:
		return nil, domain.Invalid("cargo_id", "debe enviar cargo_id o cargo")
	}
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrJobRoleNotFound
	}
	return role, nil
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:              e.ID,
		Name:            e.Name,
		Document:        e.Document,
		Email:           e.Email,
		Phone:           e.Phone,
		Address:         e.Address,
		HireDate:        dto.FormatDate(e.HireDate),
		TerminationDate: dto.FormatDatePtr(e.TerminationDate),
		Status:          e.Status,
		JobRoleID:       e.JobRoleID,
		JobRoleName:     e.JobRoleName,
		BaseSalary:      e.BaseSalary,
		HealthInsurer:   e.HealthInsurer,
		PensionFund:     e.PensionFund,
		RiskInsurer:     e.RiskInsurer,
	}
}
