package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// ── Cargos ────────────────────────────────────────────────────────────────────

// JobRoleUseCase catálogo de cargos.
type JobRoleUseCase struct {
	repo     repository.JobRoleRepository
	deptRepo repository.DepartmentRepository
}

// NewJobRoleUseCase construye el caso de uso.
func NewJobRoleUseCase(repo repository.JobRoleRepository, deptRepo repository.DepartmentRepository) *JobRoleUseCase {
	return &JobRoleUseCase{repo: repo, deptRepo: deptRepo}
}

func (uc *JobRoleUseCase) List(ctx context.Context) ([]dto.JobRoleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JobRoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toJobRoleResponse(r))
	}
	return out, nil
}

func (uc *JobRoleUseCase) GetByID(ctx context.Context, id int64) (*dto.JobRoleResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrJobRoleNotFound
	}
	resp := toJobRoleResponse(r)
	return &resp, nil
}

func (uc *JobRoleUseCase) Create(ctx context.Context, in dto.JobRoleRequest) (*dto.JobRoleResponse, error) {
	r := &entity.JobRole{}
	if err := uc.apply(ctx, r, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, r.ID)
}

func (uc *JobRoleUseCase) Update(ctx context.Context, id int64, in dto.JobRoleRequest) (*dto.JobRoleResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrJobRoleNotFound
	}
	if err := uc.apply(ctx, r, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete falla con ErrJobRoleInUse si hay empleados asignados.
func (uc *JobRoleUseCase) Delete(ctx context.Context, id int64) error {
	n, err := uc.repo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrJobRoleInUse
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *JobRoleUseCase) apply(ctx context.Context, r *entity.JobRole, in dto.JobRoleRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid("nombre", "es requerido")
	}
	salary := in.BaseSalary.Round(2)
	if salary.IsNegative() {
		return domain.Invalid("salario_base", "no puede ser negativo")
	}
	if salary.GreaterThan(entity.MaxBaseSalary) {
		return domain.Invalid("salario_base", "excede el máximo permitido")
	}
	if in.DepartmentID != nil {
		d, err := uc.deptRepo.GetByID(ctx, *in.DepartmentID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrDepartmentNotFound
		}
	}
	r.Name = name
	r.BaseSalary = salary
	r.DepartmentID = in.DepartmentID
	return nil
}

func toJobRoleResponse(r *entity.JobRole) dto.JobRoleResponse {
	return dto.JobRoleResponse{
		ID:             r.ID,
		Name:           r.Name,
		BaseSalary:     r.BaseSalary,
		DepartmentID:   r.DepartmentID,
		DepartmentName: r.DepartmentName,
	}
}

// ── Departamentos ─────────────────────────────────────────────────────────────

// DepartmentUseCase catálogo de departamentos.
type DepartmentUseCase struct {
	repo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo}
}

func (uc *DepartmentUseCase) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DepartmentResponse{ID: d.ID, Name: d.Name, Description: d.Description})
	}
	return out, nil
}

func (uc *DepartmentUseCase) GetByID(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDepartmentNotFound
	}
	return &dto.DepartmentResponse{ID: d.ID, Name: d.Name, Description: d.Description}, nil
}

func (uc *DepartmentUseCase) Create(ctx context.Context, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "es requerido")
	}
	d := &entity.Department{Name: name, Description: in.Description}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{ID: d.ID, Name: d.Name, Description: d.Description}, nil
}

func (uc *DepartmentUseCase) Update(ctx context.Context, id int64, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "es requerido")
	}
	d := &entity.Department{ID: id, Name: name, Description: in.Description}
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{ID: d.ID, Name: d.Name, Description: d.Description}, nil
}

// Delete deja sin departamento a los cargos que lo referencian.
func (uc *DepartmentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
