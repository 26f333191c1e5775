package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// El CHECK de salario_base y el desbordamiento de NUMERIC son errores de entrada.
func TestEmployeeRepo_Create_SalarioFueraDeRango(t *testing.T) {
	for _, code := range []string{codeCheckViolation, codeNumericOutOfRange} {
		t.Run(code, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO empleados")).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: code, ConstraintName: "empleados_salario_base_check"})

			e := &entity.Employee{
				Name: "Ana", Document: "1", HireDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Status: entity.EmployeeActive, JobRoleID: 1, BaseSalary: decimal.Zero,
			}
			err := NewEmployeeRepository(mock).Create(context.Background(), e)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "error: %v", err)
			assert.Contains(t, verr.Fields, "salario_base")
		})
	}
}
