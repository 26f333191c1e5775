package dto

// PayPeriodRequest body para POST /api/periodos.
type PayPeriodRequest struct {
	StartDate string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"fecha_fin" validate:"required,datetime=2006-01-02"`
	Status    string `json:"estado" validate:"omitempty,oneof=abierto cerrado"`
}

// PayPeriodResponse periodo de nómina.
type PayPeriodResponse struct {
	ID        int64  `json:"id"`
	StartDate string `json:"fecha_inicio"`
	EndDate   string `json:"fecha_fin"`
	Status    string `json:"estado"`
}
