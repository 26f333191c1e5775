package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las categorías base se usan con errors.Is para mapear el código HTTP;
// las variantes específicas envuelven una categoría y aportan el mensaje.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("transición de estado no permitida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: usuario", ErrNotFound)
)

// NotFound
var (
	ErrEmployeeNotFound   = fmt.Errorf("%w: empleado", ErrNotFound)
	ErrPeriodNotFound     = fmt.Errorf("%w: periodo de nómina", ErrNotFound)
	ErrPaymentNotFound    = fmt.Errorf("%w: pago", ErrNotFound)
	ErrIncidentNotFound   = fmt.Errorf("%w: novedad", ErrNotFound)
	ErrJobRoleNotFound    = fmt.Errorf("%w: cargo", ErrNotFound)
	ErrDepartmentNotFound = fmt.Errorf("%w: departamento", ErrNotFound)
	ErrParameterNotFound  = fmt.Errorf("%w: parámetro de nómina", ErrNotFound)
)

// Conflict
var (
	ErrAmbiguousEmployee  = fmt.Errorf("%w: más de un empleado con ese nombre", ErrConflict)
	ErrDocumentExists     = fmt.Errorf("%w: documento ya registrado", ErrConflict)
	ErrJobRoleExists      = fmt.Errorf("%w: ya existe un cargo con ese nombre", ErrConflict)
	ErrEmployeeHasHistory = fmt.Errorf("%w: el empleado tiene pagos registrados", ErrConflict)
	ErrJobRoleInUse       = fmt.Errorf("%w: el cargo tiene empleados asignados", ErrConflict)
	ErrDuplicatePayment   = fmt.Errorf("%w: ya existe un pago para este empleado en el periodo", ErrConflict)
)

// InvalidState
var (
	ErrEmployeeInactive     = fmt.Errorf("%w: empleado inactivo", ErrInvalidState)
	ErrPeriodClosed         = fmt.Errorf("%w: el periodo está cerrado", ErrInvalidState)
	ErrPaymentVoided        = fmt.Errorf("%w: el pago está anulado", ErrInvalidState)
	ErrPaymentAlreadyPaid   = fmt.Errorf("%w: el pago ya fue marcado como pagado", ErrInvalidState)
	ErrPaymentNotDeletable  = fmt.Errorf("%w: solo se eliminan pagos pendientes nunca pagados; use anular", ErrInvalidState)
	ErrIncidentNotPending   = fmt.Errorf("%w: la novedad ya fue resuelta", ErrInvalidState)
	ErrPeriodAlreadyInState = fmt.Errorf("%w: el periodo ya está en ese estado", ErrInvalidState)
)

// DuplicatePaymentError indica que ya existe un pago no anulado para
// (empleado, periodo). PaymentID es el pago existente.
type DuplicatePaymentError struct {
	PaymentID int64
}

func (e *DuplicatePaymentError) Error() string {
	if e.PaymentID == 0 {
		return ErrDuplicatePayment.Error()
	}
	return fmt.Sprintf("%s (pago_id=%d)", ErrDuplicatePayment.Error(), e.PaymentID)
}

// Unwrap permite errors.Is(err, ErrDuplicatePayment) y errors.Is(err, ErrConflict).
func (e *DuplicatePaymentError) Unwrap() error { return ErrDuplicatePayment }

// ValidationError describe campos inválidos de una petición.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d campo(s) inválido(s)", ErrInvalidInput.Error(), len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError de un solo campo.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Códigos de error expuestos en respuestas y reportes.
const (
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL"
)

// Code clasifica err según su categoría base. Lo no reconocido es CodeInternal.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	}
	return CodeInternal
}
