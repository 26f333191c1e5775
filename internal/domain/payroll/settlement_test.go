package payroll_test

import (
	"testing"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de liquidación con parámetros por defecto:
//
//	SALUD 4% · PENSIÓN 4% · ARL 0.5% · AUX_TRANSPORTE 140606 · SMMLV 1300000
//
// Salario 3.800.000 sin novedades → sin auxilio (supera 2 SMMLV),
// deducciones 8.5% = 323.000, neto 3.477.000.
// Salario 1.200.000 + 200.000 horas extra → con auxilio,
// devengos 1.540.606, deducciones 102.000, neto 1.438.606.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_SalarioAltoSinAuxilio(t *testing.T) {
	s := payroll.DefaultRules().Compute(payroll.Input{
		BaseSalary: dec("3800000"),
		Parameters: payroll.DefaultParameters(),
	})

	assert.False(t, s.TransportSubsidyEligible)
	assert.True(t, dec("3800000").Equal(s.TotalEarnings), "devengos: %s", s.TotalEarnings)
	assert.True(t, dec("323000").Equal(s.TotalDeductions), "deducciones: %s", s.TotalDeductions)
	assert.True(t, dec("3477000").Equal(s.NetPay), "neto: %s", s.NetPay)

	ded := s.DeductionsMap()
	assert.True(t, dec("152000").Equal(ded[payroll.KeyHealth]))
	assert.True(t, dec("152000").Equal(ded[payroll.KeyPension]))
	assert.True(t, dec("19000").Equal(ded[payroll.KeyRisk]))
	assert.True(t, ded[payroll.KeyOtherDeductions].IsZero())
}

func TestCompute_SalarioBajoConHorasExtra(t *testing.T) {
	s := payroll.DefaultRules().Compute(payroll.Input{
		BaseSalary: dec("1200000"),
		Incidents:  map[string]decimal.Decimal{entity.IncidentOvertime: dec("200000")},
		Parameters: payroll.DefaultParameters(),
	})

	assert.True(t, s.TransportSubsidyEligible)
	assert.True(t, dec("140606").Equal(s.EarningsMap()[payroll.KeyTransportSubsidy]))
	assert.True(t, dec("1540606").Equal(s.TotalEarnings), "devengos: %s", s.TotalEarnings)
	assert.True(t, dec("102000").Equal(s.TotalDeductions), "deducciones: %s", s.TotalDeductions)
	assert.True(t, dec("1438606").Equal(s.NetPay), "neto: %s", s.NetPay)
}

// El umbral del auxilio es inclusivo: salario == 2 × SMMLV conserva el auxilio.
func TestCompute_UmbralAuxilioInclusivo(t *testing.T) {
	rules := payroll.DefaultRules()
	params := payroll.DefaultParameters()

	atLimit := rules.Compute(payroll.Input{BaseSalary: dec("2600000"), Parameters: params})
	over := rules.Compute(payroll.Input{BaseSalary: dec("2600000.01"), Parameters: params})

	assert.True(t, atLimit.TransportSubsidyEligible)
	assert.False(t, over.TransportSubsidyEligible)
	assert.True(t, over.EarningsMap()[payroll.KeyTransportSubsidy].IsZero())
}

func TestCompute_UmbralConfigurable(t *testing.T) {
	rules := payroll.DefaultRules()
	rules.SubsidyWageMultiple = dec("1")

	s := rules.Compute(payroll.Input{BaseSalary: dec("1500000"), Parameters: payroll.DefaultParameters()})
	assert.False(t, s.TransportSubsidyEligible)
}

// Incapacidad suma como devengo; ausencias y descuentos restan juntos.
func TestCompute_TodasLasNovedades(t *testing.T) {
	s := payroll.DefaultRules().Compute(payroll.Input{
		BaseSalary: dec("3000000"),
		Incidents: map[string]decimal.Decimal{
			entity.IncidentOvertime:  dec("100000"),
			entity.IncidentBonus:     dec("50000"),
			entity.IncidentVacation:  dec("200000"),
			entity.IncidentLeave:     dec("30000"),
			entity.IncidentSickLeave: dec("80000"),
			entity.IncidentAbsence:   dec("40000"),
			entity.IncidentDiscount:  dec("10000"),
		},
		Parameters: payroll.DefaultParameters(),
	})

	earn := s.EarningsMap()
	assert.True(t, dec("80000").Equal(earn[payroll.KeySickLeave]))
	assert.True(t, dec("3460000").Equal(s.TotalEarnings), "devengos: %s", s.TotalEarnings)
	assert.True(t, dec("50000").Equal(s.DeductionsMap()[payroll.KeyOtherDeductions]))
	// 8.5% de 3.000.000 = 255.000 + 50.000
	assert.True(t, dec("305000").Equal(s.TotalDeductions), "deducciones: %s", s.TotalDeductions)
	assert.True(t, dec("3155000").Equal(s.NetPay))
}

// El neto siempre es devengos − deducciones, también con montos que requieren redondeo.
func TestCompute_NetoCuadraConRedondeo(t *testing.T) {
	params := payroll.DefaultParameters()
	params.RiskPct = dec("0.522")

	for _, salary := range []string{"1000001", "1234567.89", "999999.99", "0"} {
		s := payroll.DefaultRules().Compute(payroll.Input{BaseSalary: dec(salary), Parameters: params})

		assert.True(t, s.NetPay.Equal(s.TotalEarnings.Sub(s.TotalDeductions)), "salario %s", salary)
		for _, l := range append(s.Earnings, s.Deductions...) {
			assert.LessOrEqual(t, -l.Value.Exponent(), int32(2), "%s con más de 2 decimales: %s", l.Key, l.Value)
		}
	}
}

func TestParametersFrom_UsaDefaultsParaFaltantes(t *testing.T) {
	p := payroll.ParametersFrom(map[string]decimal.Decimal{
		payroll.ParamHealthPct: dec("4.5"),
		"OTRO":                 dec("1"),
	})

	assert.True(t, dec("4.5").Equal(p.HealthPct))
	assert.True(t, dec("4").Equal(p.PensionPct))
	assert.True(t, dec("0.5").Equal(p.RiskPct))
	assert.True(t, dec("140606").Equal(p.TransportSubsidy))
	assert.True(t, dec("1300000").Equal(p.MinimumWage))
}

func TestDetails_OmiteCerosYEtiqueta(t *testing.T) {
	s := payroll.DefaultRules().Compute(payroll.Input{
		BaseSalary: dec("3800000"),
		Parameters: payroll.DefaultParameters(),
	})

	details := s.Details(7)
	require.Len(t, details, 4, "salario + salud + pensión + arl")

	concepts := make([]string, 0, len(details))
	for _, d := range details {
		assert.Equal(t, int64(7), d.PaymentID)
		assert.False(t, d.Value.IsZero())
		concepts = append(concepts, d.Concept)
	}
	assert.Equal(t, []string{"Salario Básico (periodo)", "Salud (4%)", "Pensión (4%)", "ARL (0.5%)"}, concepts)
	assert.Equal(t, entity.DetailEarning, details[0].Kind)
	assert.Equal(t, entity.DetailDeduction, details[3].Kind)
}
