package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
)

// ParameterHandler parámetros de nómina (SMMLV, auxilio de transporte, porcentajes).
type ParameterHandler struct {
	uc *usecase.ParameterUseCase
}

// NewParameterHandler construye el handler.
func NewParameterHandler(uc *usecase.ParameterUseCase) *ParameterHandler {
	return &ParameterHandler{uc: uc}
}

// List godoc
// @Summary      Listar parámetros de nómina
// @Tags         parametros
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ParameterResponse
// @Router       /api/parametros [get]
func (h *ParameterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar parámetro
// @Tags         parametros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nombre  path  string                 true  "Nombre del parámetro"
// @Param        body    body  dto.ParameterRequest  true  "valor"
// @Success      200     {object}  dto.ParameterResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/parametros/{nombre} [put]
func (h *ParameterHandler) Upsert(c *fiber.Ctx) error {
	var in dto.ParameterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Upsert(c.UserContext(), c.Params("nombre"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
