package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// JobRoleRepository puerto de persistencia para el catálogo de cargos.
type JobRoleRepository interface {
	Create(ctx context.Context, r *entity.JobRole) error
	GetByID(ctx context.Context, id int64) (*entity.JobRole, error)
	GetByName(ctx context.Context, name string) (*entity.JobRole, error)
	List(ctx context.Context) ([]*entity.JobRole, error)
	Update(ctx context.Context, r *entity.JobRole) error
	Delete(ctx context.Context, id int64) error
	CountEmployees(ctx context.Context, id int64) (int, error)
}

// DepartmentRepository puerto de persistencia para departamentos.
type DepartmentRepository interface {
	Create(ctx context.Context, d *entity.Department) error
	GetByID(ctx context.Context, id int64) (*entity.Department, error)
	List(ctx context.Context) ([]*entity.Department, error)
	Update(ctx context.Context, d *entity.Department) error
	Delete(ctx context.Context, id int64) error
}
