package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrPeriodNotFound, domain.CodeNotFound},
		{fmt.Errorf("liquidar: %w", domain.ErrEmployeeInactive), domain.CodeInvalidState},
		{&domain.DuplicatePaymentError{PaymentID: 9}, domain.CodeConflict},
		{domain.ErrAmbiguousEmployee, domain.CodeConflict},
		{domain.Invalid("monto", "requerido"), domain.CodeValidation},
		{domain.ErrForbidden, domain.CodeForbidden},
		{errors.New("connection refused"), domain.CodeInternal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, domain.Code(c.err), c.err.Error())
	}
}

func TestDuplicatePaymentError(t *testing.T) {
	err := fmt.Errorf("tx: %w", &domain.DuplicatePaymentError{PaymentID: 12})

	assert.ErrorIs(t, err, domain.ErrDuplicatePayment)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "pago_id=12")

	var dup *domain.DuplicatePaymentError
	assert.True(t, errors.As(err, &dup))
	assert.Equal(t, int64(12), dup.PaymentID)
}
