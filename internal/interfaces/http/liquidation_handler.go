package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/liquidation"
	"github.com/jhoicas/Nomina-api/internal/application/payment"
)

// LiquidationHandler liquidación de nómina individual y por periodo.
type LiquidationHandler struct {
	uc       *liquidation.LiquidationUseCase
	payments *payment.PaymentUseCase
}

// NewLiquidationHandler construye el handler.
func NewLiquidationHandler(uc *liquidation.LiquidationUseCase, payments *payment.PaymentUseCase) *LiquidationHandler {
	return &LiquidationHandler{uc: uc, payments: payments}
}

// Liquidate godoc
// @Summary      Liquidar nómina de un empleado en un periodo
// @Description  Calcula devengos y deducciones, y registra el pago con su detalle en una sola transacción.
// @Tags         nomina
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LiquidationRequest  true  "periodo_id, empleado_id o nombre_empleado"
// @Success      201   {object}  dto.LiquidationResponse
// @Success      200   {object}  dto.LiquidationResponse  "pago existente reemplazado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "incluye pago_id del pago existente"
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pagos/liquidar [post]
func (h *LiquidationHandler) Liquidate(c *fiber.Ctx) error {
	var in dto.LiquidationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Liquidate(c.UserContext(), in)
	if err != nil {
		return err
	}
	status := fiber.StatusCreated
	if out.Payment.Replaced {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(out)
}

// LiquidatePeriod godoc
// @Summary      Liquidar todos los empleados activos de un periodo
// @Tags         nomina
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        periodo_id  path  int                          true   "ID del periodo"
// @Param        body        body  dto.BatchLiquidationRequest  false  "fecha_pago, metodo_pago, sobrescribir"
// @Success      200         {object}  dto.BatchLiquidationResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/nomina/liquidar/{periodo_id} [post]
func (h *LiquidationHandler) LiquidatePeriod(c *fiber.Ctx) error {
	periodID, err := paramID(c, "periodo_id")
	if err != nil {
		return err
	}
	var in dto.BatchLiquidationRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.LiquidatePeriod(c.UserContext(), periodID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PeriodPayments godoc
// @Summary      Pagos de un periodo
// @Tags         nomina
// @Security     Bearer
// @Produce      json
// @Param        periodo_id  path  int  true  "ID del periodo"
// @Success      200         {array}   dto.PaymentResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/nomina/pagos/{periodo_id} [get]
func (h *LiquidationHandler) PeriodPayments(c *fiber.Ctx) error {
	periodID, err := paramID(c, "periodo_id")
	if err != nil {
		return err
	}
	out, err := h.payments.List(c.UserContext(), &periodID, nil)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
