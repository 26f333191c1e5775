package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/payment"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// PaymentHandler pagos manuales, cambios de estado y documentos.
type PaymentHandler struct {
	uc *payment.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagos
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Param        periodo_id   query  int  false  "Filtrar por periodo"
// @Param        empleado_id  query  int  false  "Filtrar por empleado"
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/pagos [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	periodID, err := queryID(c, "periodo_id")
	if err != nil {
		return err
	}
	employeeID, err := queryID(c, "empleado_id")
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), periodID, employeeID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pago con detalle
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pagos/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar pago manual
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentRequest  true  "Datos del pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar pago
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID del pago"
// @Param        body  body  dto.PaymentRequest  true  "Datos del pago"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      422   {object}  dto.ErrorResponse  "pago anulado"
// @Router       /api/pagos/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.PaymentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pago pendiente
// @Tags         pagos
// @Security     Bearer
// @Param        id   path  int  true  "ID del pago"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/pagos/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkPaid godoc
// @Summary      Marcar pago como pagado
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/pagos/{id}/pagar [post]
func (h *PaymentHandler) MarkPaid(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.MarkPaid(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular pago
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true   "ID del pago"
// @Param        body  body  dto.VoidPaymentRequest  false  "motivo"
// @Success      200   {object}  dto.PaymentResponse
// @Router       /api/pagos/{id}/anular [post]
func (h *PaymentHandler) Void(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.VoidPaymentRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Void(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Payslip godoc
// @Summary      Desprendible de pago en PDF
// @Tags         pagos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {file}  binary
// @Router       /api/pagos/{id}/desprendible [get]
func (h *PaymentHandler) Payslip(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	data, name, err := h.uc.Payslip(c.UserContext(), id)
	if err != nil {
		return err
	}
	return sendFile(c, mimePDF, name, data)
}

// Export godoc
// @Summary      Exportar pagos a Excel
// @Tags         reportes
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        periodo_id  query  int  false  "Filtrar por periodo"
// @Success      200  {file}  binary
// @Router       /api/reportes/pagos.xlsx [get]
func (h *PaymentHandler) Export(c *fiber.Ctx) error {
	periodID, err := queryID(c, "periodo_id")
	if err != nil {
		return err
	}
	data, name, err := h.uc.Export(c.UserContext(), periodID)
	if err != nil {
		return err
	}
	return sendFile(c, mimeXLSX, name, data)
}

func sendFile(c *fiber.Ctx, contentType, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}
