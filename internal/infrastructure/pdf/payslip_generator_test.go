package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/payment"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":          "0,00",
		"999":        "999,00",
		"3477000":    "3.477.000,00",
		"1438606.5":  "1.438.606,50",
		"-140606.05": "-140.606,05",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGeneratePayslipPDF(t *testing.T) {
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	slip := payment.Payslip{
		Payment: &entity.Payment{
			ID: 7, EmployeeName: "Ana Gómez", PeriodStart: &start, PeriodEnd: &end,
			PaymentDate: end, Amount: decimal.RequireFromString("3477000"),
			Method: entity.PaymentTransfer, Status: entity.PaymentPending,
			Notes: "Liquidación automática",
		},
		Employee: &entity.Employee{Document: "1001", JobRoleName: "Analista"},
		Details: []*entity.PaymentDetail{
			{Concept: "Salario Básico (periodo)", Value: decimal.RequireFromString("3800000"), Kind: entity.DetailEarning},
			{Concept: "Salud (4%)", Value: decimal.RequireFromString("152000"), Kind: entity.DetailDeduction},
		},
	}

	b, err := NewMarotoPayslipGenerator("Mi Empresa SAS").GeneratePayslipPDF(context.Background(), slip)
	require.NoError(t, err)
	require.Greater(t, len(b), 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGeneratePayslipPDF_SinPago(t *testing.T) {
	_, err := NewMarotoPayslipGenerator("").GeneratePayslipPDF(context.Background(), payment.Payslip{})
	assert.Error(t, err)
}
