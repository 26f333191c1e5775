package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/apptest"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func day(s string) time.Time {
	t, _ := time.Parse(dto.DateLayout, s)
	return t
}

func newEmployeeUC(db *apptest.MemDB) *usecase.EmployeeUseCase {
	return usecase.NewEmployeeUseCase(db.Employees(), db.JobRoles(), db.PaymentsRepo())
}

func employeeRequest() dto.EmployeeRequest {
	return dto.EmployeeRequest{
		Name:        "Carlos Ruiz",
		Document:    "7001",
		HireDate:    "2024-02-01",
		JobRoleName: "Operario",
		BaseSalary:  dec("1423500"),
	}
}

func TestEmployeeCreate_ResuelveCargoPorNombre(t *testing.T) {
	db := apptest.NewMemDB()
	roleID := db.AddJobRole(entity.JobRole{Name: "Operario"})

	resp, err := newEmployeeUC(db).Create(context.Background(), employeeRequest())
	require.NoError(t, err)
	assert.Equal(t, roleID, resp.JobRoleID)
	assert.Equal(t, "Operario", resp.JobRoleName)
	assert.Equal(t, entity.EmployeeActive, resp.Status)
	assert.Nil(t, resp.TerminationDate)
}

func TestEmployeeCreate_CargoDesconocidoNoSeCrea(t *testing.T) {
	db := apptest.NewMemDB()
	uc := newEmployeeUC(db)

	_, err := uc.Create(context.Background(), employeeRequest())
	assert.ErrorIs(t, err, domain.ErrJobRoleNotFound)

	req := employeeRequest()
	id := int64(77)
	req.JobRoleID = &id
	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrJobRoleNotFound)

	roles, err := db.JobRoles().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestEmployeeCreate_Validaciones(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.EmployeeRequest)
	}{
		{"salario cero", func(r *dto.EmployeeRequest) { r.BaseSalary = decimal.Zero }},
		{"salario negativo", func(r *dto.EmployeeRequest) { r.BaseSalary = dec("-1") }},
		{"salario sobre el tope", func(r *dto.EmployeeRequest) { r.BaseSalary = dec("10000000000") }},
		{"sin documento", func(r *dto.EmployeeRequest) { r.Document = " " }},
		{"fecha ingreso inválida", func(r *dto.EmployeeRequest) { r.HireDate = "01/02/2024" }},
		{"retiro antes del ingreso", func(r *dto.EmployeeRequest) { r.TerminationDate = strPtr("2023-12-31") }},
		{"inactivo sin retiro", func(r *dto.EmployeeRequest) { r.Status = entity.EmployeeInactive }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := apptest.NewMemDB()
			db.AddJobRole(entity.JobRole{Name: "Operario"})
			req := employeeRequest()
			tt.mutate(&req)

			_, err := newEmployeeUC(db).Create(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Un salario que redondea a 0 centavos no es positivo.
func TestEmployeeCreate_SalarioQueRedondeaACero(t *testing.T) {
	db := apptest.NewMemDB()
	db.AddJobRole(entity.JobRole{Name: "Operario"})
	req := employeeRequest()
	req.BaseSalary = dec("0.004")

	_, err := newEmployeeUC(db).Create(context.Background(), req)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "error: %v", err)
	assert.Contains(t, verr.Fields, "salario_base")

	list, err := newEmployeeUC(db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmployeeUpdate_RetiroInactivaYBorrarloReactiva(t *testing.T) {
	db := apptest.NewMemDB()
	db.AddJobRole(entity.JobRole{Name: "Operario"})
	uc := newEmployeeUC(db)
	created, err := uc.Create(context.Background(), employeeRequest())
	require.NoError(t, err)

	req := employeeRequest()
	req.TerminationDate = strPtr("2025-06-30")
	resp, err := uc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeInactive, resp.Status)
	assert.Equal(t, "2025-06-30", *resp.TerminationDate)

	resp, err = uc.Update(context.Background(), created.ID, employeeRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeActive, resp.Status)
}

func TestEmployeeCreate_DocumentoDuplicado(t *testing.T) {
	db := apptest.NewMemDB()
	db.AddJobRole(entity.JobRole{Name: "Operario"})
	uc := newEmployeeUC(db)
	_, err := uc.Create(context.Background(), employeeRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), employeeRequest())
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestEmployeeDelete_ConPagosSeConservaHistorial(t *testing.T) {
	db := apptest.NewMemDB()
	db.AddJobRole(entity.JobRole{Name: "Operario"})
	uc := newEmployeeUC(db)
	created, err := uc.Create(context.Background(), employeeRequest())
	require.NoError(t, err)

	empID := created.ID
	db.AddPayment(entity.Payment{
		EmployeeID: &empID, EmployeeName: created.Name, PaymentDate: day("2025-08-16"),
		Amount: dec("1"), Method: entity.PaymentCash, Status: entity.PaymentPaid,
	})

	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrEmployeeHasHistory)
	_, err = uc.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestEmployeeDelete_SinPagos(t *testing.T) {
	db := apptest.NewMemDB()
	db.AddJobRole(entity.JobRole{Name: "Operario"})
	uc := newEmployeeUC(db)
	created, err := uc.Create(context.Background(), employeeRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	_, err = uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrEmployeeNotFound)
}

func ptrDec(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
