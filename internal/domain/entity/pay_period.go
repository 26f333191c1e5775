package entity

import "time"

// Estados de periodo de nómina.
const (
	PeriodOpen   = "abierto"
	PeriodClosed = "cerrado"
)

// PayPeriod representa un periodo de nómina [StartDate, EndDate].
type PayPeriod struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	Status    string // abierto, cerrado
}

// IsClosed indica si el periodo ya fue cerrado.
func (p *PayPeriod) IsClosed() bool {
	return p.Status == PeriodClosed
}
