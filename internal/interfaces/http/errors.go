package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

const internalMessage = "error interno del servidor"

// ErrorHandler traduce los errores de dominio a respuestas HTTP.
// Los errores no clasificados se registran completos y se responden como 500 genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: fiberCode(ferr.Code), Message: ferr.Message})
		}

		code := domain.Code(err)
		resp := dto.ErrorResponse{Code: code, Message: err.Error()}
		status := fiber.StatusInternalServerError

		switch code {
		case domain.CodeValidation:
			status = fiber.StatusBadRequest
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				resp.Fields = verr.Fields
			}
		case domain.CodeNotFound:
			status = fiber.StatusNotFound
		case domain.CodeConflict:
			status = fiber.StatusConflict
			var dup *domain.DuplicatePaymentError
			if errors.As(err, &dup) && dup.PaymentID != 0 {
				id := dup.PaymentID
				resp.PagoID = &id
			}
		case domain.CodeInvalidState:
			status = fiber.StatusUnprocessableEntity
		case domain.CodeUnauthorized:
			status = fiber.StatusUnauthorized
		case domain.CodeForbidden:
			status = fiber.StatusForbidden
		default:
			log.Error().Err(err).
				Str("request_id", GetRequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
			resp.Message = internalMessage
		}
		return c.Status(status).JSON(resp)
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return domain.CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return domain.CodeValidation
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	return domain.CodeInternal
}
