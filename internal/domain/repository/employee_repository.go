package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
	// FindByName busca por nombre exacto (sin distinguir mayúsculas); puede devolver varios.
	FindByName(ctx context.Context, name string) ([]*entity.Employee, error)
	GetByDocument(ctx context.Context, document string) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	ListActive(ctx context.Context) ([]*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id int64) error
}
