package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
)

// IncidentHandler novedades de nómina y su reporte.
type IncidentHandler struct {
	uc *usecase.IncidentUseCase
}

// NewIncidentHandler construye el handler.
func NewIncidentHandler(uc *usecase.IncidentUseCase) *IncidentHandler {
	return &IncidentHandler{uc: uc}
}

// List godoc
// @Summary      Listar novedades
// @Tags         novedades
// @Security     Bearer
// @Produce      json
// @Param        empleado_id   query  int     false  "Empleado"
// @Param        estado        query  string  false  "pendiente|aprobada|rechazada"
// @Param        tipo          query  string  false  "Tipo de novedad"
// @Param        fecha_inicio  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        fecha_fin     query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.IncidentResponse
// @Router       /api/novedades [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
	var in dto.IncidentFilterRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de novedades con totales por tipo
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        empleado_id   query  int     false  "Empleado"
// @Param        estado        query  string  false  "Estado"
// @Param        tipo          query  string  false  "Tipo"
// @Param        fecha_inicio  query  string  false  "Desde"
// @Param        fecha_fin     query  string  false  "Hasta"
// @Success      200  {object}  dto.IncidentReportResponse
// @Router       /api/reportes/novedades [get]
func (h *IncidentHandler) Report(c *fiber.Ctx) error {
	var in dto.IncidentFilterRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Report(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener novedad
// @Tags         novedades
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la novedad"
// @Success      200  {object}  dto.IncidentResponse
// @Router       /api/novedades/{id} [get]
func (h *IncidentHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Registrar novedad
// @Tags         novedades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IncidentRequest  true  "Datos de la novedad"
// @Success      201   {object}  dto.IncidentResponse
// @Router       /api/novedades [post]
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var in dto.IncidentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar novedad
// @Tags         novedades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la novedad"
// @Param        body  body  dto.IncidentRequest  true  "Datos de la novedad"
// @Success      200   {object}  dto.IncidentResponse
// @Router       /api/novedades/{id} [put]
func (h *IncidentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.IncidentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar novedad
// @Tags         novedades
// @Security     Bearer
// @Param        id   path  int  true  "ID de la novedad"
// @Success      204
// @Router       /api/novedades/{id} [delete]
func (h *IncidentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve aprueba una novedad pendiente; registra al usuario del token.
// @Router /api/novedades/{id}/aprobar [post]
func (h *IncidentHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Approve(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Reject rechaza una novedad pendiente.
// @Router /api/novedades/{id}/rechazar [post]
func (h *IncidentHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Reject(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
