package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
)

// PeriodHandler periodos de nómina.
type PeriodHandler struct {
	uc *usecase.PeriodUseCase
}

// NewPeriodHandler construye el handler.
func NewPeriodHandler(uc *usecase.PeriodUseCase) *PeriodHandler {
	return &PeriodHandler{uc: uc}
}

// List godoc
// @Summary      Listar periodos
// @Tags         periodos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PayPeriodResponse
// @Router       /api/periodos [get]
func (h *PeriodHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener periodo
// @Tags         periodos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del periodo"
// @Success      200  {object}  dto.PayPeriodResponse
// @Router       /api/periodos/{id} [get]
func (h *PeriodHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear periodo
// @Tags         periodos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PayPeriodRequest  true  "fecha_inicio, fecha_fin"
// @Success      201   {object}  dto.PayPeriodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/periodos [post]
func (h *PeriodHandler) Create(c *fiber.Ctx) error {
	var in dto.PayPeriodRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar periodo
// @Tags         periodos
// @Security     Bearer
// @Param        id   path  int  true  "ID del periodo"
// @Success      200  {object}  dto.PayPeriodResponse
// @Failure      422  {object}  dto.ErrorResponse  "ya estaba cerrado"
// @Router       /api/periodos/{id}/cerrar [post]
func (h *PeriodHandler) Close(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Close(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Reopen godoc
// @Summary      Reabrir periodo
// @Tags         periodos
// @Security     Bearer
// @Param        id   path  int  true  "ID del periodo"
// @Success      200  {object}  dto.PayPeriodResponse
// @Router       /api/periodos/{id}/reabrir [post]
func (h *PeriodHandler) Reopen(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Reopen(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
