package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas en la API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

func init() {
	// Montos como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	PagoID  *int64            `json:"pago_id,omitempty"` // conflicto por pago duplicado
}

// MessageResponse respuesta simple con mensaje y, opcionalmente, el ID afectado.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// FormatDate fecha en formato de la API.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr nil → nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate parsea YYYY-MM-DD en UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseDatePtr nil o "" → nil.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
