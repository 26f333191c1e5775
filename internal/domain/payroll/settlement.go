package payroll

import (
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Claves de conceptos en el desglose (también usadas como llaves JSON).
const (
	KeyBaseSalary       = "salarioDias"
	KeyOvertime         = "horasExtra"
	KeyBonuses          = "bonificaciones"
	KeyVacation         = "vacaciones"
	KeyLeave            = "licencias"
	KeySickLeave        = "incapacidad"
	KeyTransportSubsidy = "auxTransporte"

	KeyHealth          = "salud"
	KeyPension         = "pension"
	KeyRisk            = "arl"
	KeyOtherDeductions = "descuentos"
)

// moneyPlaces precisión de montos: 2 decimales (centavos).
const moneyPlaces = 2

// Money redondea a 2 decimales, mitad alejándose de cero (determinista).
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// Input datos para liquidar un empleado en un periodo.
type Input struct {
	BaseSalary decimal.Decimal
	// Incidents: suma de novedades aprobadas por tipo (entity.Incident*).
	Incidents  map[string]decimal.Decimal
	Parameters Parameters
}

// Line concepto liquidado.
type Line struct {
	Key     string
	Concept string
	Value   decimal.Decimal
	Kind    string // entity.DetailEarning / entity.DetailDeduction
}

// Settlement resultado de la liquidación de un empleado.
// Invariante: NetPay = TotalEarnings − TotalDeductions, con cada línea ya redondeada.
type Settlement struct {
	RulesVersion             string
	BaseSalary               decimal.Decimal
	TransportSubsidyEligible bool
	Earnings                 []Line
	Deductions               []Line
	TotalEarnings            decimal.Decimal
	TotalDeductions          decimal.Decimal
	NetPay                   decimal.Decimal
}

// Compute liquida devengos, deducciones y neto.
//
// Devengos: salario base, horas extra, bonificaciones, vacaciones, licencias,
// incapacidad (tratada como devengo) y auxilio de transporte.
// Deducciones: salud, pensión y ARL sobre el salario base, más descuentos y ausencias.
func (r Rules) Compute(in Input) Settlement {
	p := in.Parameters
	inc := func(t string) decimal.Decimal {
		if in.Incidents == nil {
			return decimal.Zero
		}
		return Money(in.Incidents[t])
	}
	pct := func(rate decimal.Decimal) decimal.Decimal {
		return Money(in.BaseSalary.Mul(rate).Div(decimal.NewFromInt(100)))
	}

	eligible := r.TransportSubsidyEligible(in.BaseSalary, p)
	subsidy := decimal.Zero
	if eligible {
		subsidy = Money(p.TransportSubsidy)
	}

	s := Settlement{
		RulesVersion:             r.Version,
		BaseSalary:               Money(in.BaseSalary),
		TransportSubsidyEligible: eligible,
		Earnings: []Line{
			{KeyBaseSalary, "Salario Básico (periodo)", Money(in.BaseSalary), entity.DetailEarning},
			{KeyOvertime, "Horas extra", inc(entity.IncidentOvertime), entity.DetailEarning},
			{KeyBonuses, "Bonificaciones", inc(entity.IncidentBonus), entity.DetailEarning},
			{KeyVacation, "Vacaciones", inc(entity.IncidentVacation), entity.DetailEarning},
			{KeyLeave, "Licencias", inc(entity.IncidentLeave), entity.DetailEarning},
			{KeySickLeave, "Incapacidad", inc(entity.IncidentSickLeave), entity.DetailEarning},
			{KeyTransportSubsidy, "Auxilio de transporte", subsidy, entity.DetailEarning},
		},
		Deductions: []Line{
			{KeyHealth, fmt.Sprintf("Salud (%s%%)", p.HealthPct.String()), pct(p.HealthPct), entity.DetailDeduction},
			{KeyPension, fmt.Sprintf("Pensión (%s%%)", p.PensionPct.String()), pct(p.PensionPct), entity.DetailDeduction},
			{KeyRisk, fmt.Sprintf("ARL (%s%%)", p.RiskPct.String()), pct(p.RiskPct), entity.DetailDeduction},
			{KeyOtherDeductions, "Descuentos/ausencias", inc(entity.IncidentDiscount).Add(inc(entity.IncidentAbsence)), entity.DetailDeduction},
		},
	}
	s.TotalEarnings = sumLines(s.Earnings)
	s.TotalDeductions = sumLines(s.Deductions)
	s.NetPay = s.TotalEarnings.Sub(s.TotalDeductions)
	return s
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Value)
	}
	return total
}

// Details devuelve las líneas de detalle del pago, omitiendo las de valor cero.
func (s Settlement) Details(paymentID int64) []*entity.PaymentDetail {
	out := make([]*entity.PaymentDetail, 0, len(s.Earnings)+len(s.Deductions))
	for _, group := range [][]Line{s.Earnings, s.Deductions} {
		for _, l := range group {
			if l.Value.IsZero() {
				continue
			}
			out = append(out, &entity.PaymentDetail{
				PaymentID: paymentID,
				Concept:   l.Concept,
				Value:     l.Value,
				Kind:      l.Kind,
			})
		}
	}
	return out
}

// EarningsMap concepto → valor de devengos (incluye ceros).
func (s Settlement) EarningsMap() map[string]decimal.Decimal {
	return linesMap(s.Earnings)
}

// DeductionsMap concepto → valor de deducciones (incluye ceros).
func (s Settlement) DeductionsMap() map[string]decimal.Decimal {
	return linesMap(s.Deductions)
}

func linesMap(lines []Line) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		m[l.Key] = l.Value
	}
	return m
}
