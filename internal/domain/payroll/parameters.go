package payroll

import "github.com/shopspring/decimal"

// Nombres de parámetros en la tabla parametros_nomina.
const (
	ParamHealthPct        = "SALUD_PORC"
	ParamPensionPct       = "PENSION_PORC"
	ParamRiskPct          = "ARL_PORC"
	ParamTransportSubsidy = "AUX_TRANSPORTE"
	ParamMinimumWage      = "SMMLV"
)

// Parameters constantes de nómina usadas por la liquidación.
// Porcentajes expresados en puntos (4.0 = 4%).
type Parameters struct {
	HealthPct        decimal.Decimal
	PensionPct       decimal.Decimal
	RiskPct          decimal.Decimal
	TransportSubsidy decimal.Decimal
	MinimumWage      decimal.Decimal
}

// DefaultParameters valores usados cuando la tabla no trae el parámetro.
func DefaultParameters() Parameters {
	return Parameters{
		HealthPct:        decimal.RequireFromString("4.0"),
		PensionPct:       decimal.RequireFromString("4.0"),
		RiskPct:          decimal.RequireFromString("0.5"),
		TransportSubsidy: decimal.NewFromInt(140606),
		MinimumWage:      decimal.NewFromInt(1300000),
	}
}

// ParametersFrom construye Parameters desde nombre → valor, aplicando el
// valor por defecto a cada clave ausente.
func ParametersFrom(values map[string]decimal.Decimal) Parameters {
	p := DefaultParameters()
	pick := func(key string, dst *decimal.Decimal) {
		if v, ok := values[key]; ok {
			*dst = v
		}
	}
	pick(ParamHealthPct, &p.HealthPct)
	pick(ParamPensionPct, &p.PensionPct)
	pick(ParamRiskPct, &p.RiskPct)
	pick(ParamTransportSubsidy, &p.TransportSubsidy)
	pick(ParamMinimumWage, &p.MinimumWage)
	return p
}

// KnownParameter indica si el nombre corresponde a un parámetro que usa la liquidación.
func KnownParameter(name string) bool {
	switch name {
	case ParamHealthPct, ParamPensionPct, ParamRiskPct, ParamTransportSubsidy, ParamMinimumWage:
		return true
	}
	return false
}

// Values nombre → valor de los parámetros conocidos.
func (p Parameters) Values() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		ParamHealthPct:        p.HealthPct,
		ParamPensionPct:       p.PensionPct,
		ParamRiskPct:          p.RiskPct,
		ParamTransportSubsidy: p.TransportSubsidy,
		ParamMinimumWage:      p.MinimumWage,
	}
}
