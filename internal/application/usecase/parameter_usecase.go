package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// ParameterUseCase almacén de parámetros de nómina.
type ParameterUseCase struct {
	repo repository.PayrollParameterRepository
}

// NewParameterUseCase construye el caso de uso.
func NewParameterUseCase(repo repository.PayrollParameterRepository) *ParameterUseCase {
	return &ParameterUseCase{repo: repo}
}

// List parámetros guardados. Los conocidos que falten se reportan con su valor por defecto.
func (uc *ParameterUseCase) List(ctx context.Context) ([]dto.ParameterResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(list))
	out := make([]dto.ParameterResponse, 0, len(list))
	for _, p := range list {
		seen[p.Name] = true
		out = append(out, dto.ParameterResponse{Name: p.Name, Value: p.Value})
	}
	for name, v := range payroll.DefaultParameters().Values() {
		if !seen[name] {
			out = append(out, dto.ParameterResponse{Name: name, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Upsert crea o reemplaza un parámetro. El valor no puede ser negativo.
func (uc *ParameterUseCase) Upsert(ctx context.Context, name string, in dto.ParameterRequest) (*dto.ParameterResponse, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, domain.Invalid("nombre", "es requerido")
	}
	if in.Value.IsNegative() {
		return nil, domain.Invalid("valor", "no puede ser negativo")
	}
	p := &entity.PayrollParameter{Name: name, Value: in.Value}
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ParameterResponse{Name: p.Name, Value: p.Value}, nil
}
