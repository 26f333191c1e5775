package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

func TestTxRunner_RunPayments_Commit(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pagos")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := NewTxRunner(mock).RunPayments(context.Background(), func(repo repository.PaymentRepository) error {
		return repo.Delete(context.Background(), 5)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RunPayments_RollbackEnError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pagos")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := NewTxRunner(mock).RunPayments(context.Background(), func(repo repository.PaymentRepository) error {
		return repo.Delete(context.Background(), 5)
	})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_BeginFalla(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := NewTxRunner(mock).RunPayments(context.Background(), func(repository.PaymentRepository) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin transaction")
	assert.False(t, called)
}

// Un fallo al insertar detalles deja sin confirmar también el encabezado.
func TestTxRunner_RunLiquidation_FalloEnDetallesHaceRollback(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pago_detalle")).
		WithArgs(int64(41)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pago_detalle")).
		WithArgs(int64(41), "Salario base", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewTxRunner(mock).RunLiquidation(context.Background(), func(
		_ repository.PayPeriodRepository,
		_ repository.EmployeeRepository,
		_ repository.PayrollParameterRepository,
		_ repository.IncidentRepository,
		payments repository.PaymentRepository,
	) error {
		details := []*entity.PaymentDetail{{Concept: "Salario base", Kind: entity.DetailEarning}}
		return payments.ReplaceDetails(context.Background(), 41, details)
	})
	assert.ErrorContains(t, err, "insert detalle")
	assert.NoError(t, mock.ExpectationsWereMet())
}
