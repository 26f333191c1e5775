package dto

import "github.com/shopspring/decimal"

// ParameterRequest body para PUT /api/parametros/:nombre.
type ParameterRequest struct {
	Value decimal.Decimal `json:"valor"`
}

// ParameterResponse parámetro de nómina.
type ParameterResponse struct {
	Name  string          `json:"nombre"`
	Value decimal.Decimal `json:"valor"`
}
