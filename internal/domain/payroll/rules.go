package payroll

import "github.com/shopspring/decimal"

// RulesVersion identifica el conjunto de reglas de liquidación vigente.
// Cambiar cualquier umbral implica cambiar la versión.
const RulesVersion = "2025.08-1"

// Rules umbrales de negocio de la liquidación que no viven en parametros_nomina.
type Rules struct {
	Version string
	// SubsidyWageMultiple: hay auxilio de transporte si salario ≤ múltiplo × SMMLV.
	SubsidyWageMultiple decimal.Decimal
}

// DefaultRules reglas canónicas (auxilio hasta 2 SMMLV).
func DefaultRules() Rules {
	return Rules{
		Version:             RulesVersion,
		SubsidyWageMultiple: decimal.NewFromInt(2),
	}
}

// SubsidyThreshold salario máximo con derecho a auxilio de transporte.
func (r Rules) SubsidyThreshold(p Parameters) decimal.Decimal {
	return p.MinimumWage.Mul(r.SubsidyWageMultiple)
}

// TransportSubsidyEligible aplica: salario_base ≤ múltiplo × SMMLV.
func (r Rules) TransportSubsidyEligible(baseSalary decimal.Decimal, p Parameters) bool {
	return baseSalary.LessThanOrEqual(r.SubsidyThreshold(p))
}
