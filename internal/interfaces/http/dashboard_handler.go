package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Nomina-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Empleados, usuarios, pagos del mes (sin anulados), último pago y novedades por estado.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// MonthlyPayments GET /api/dashboard/pagos-mensuales
// Últimos 12 meses, del más antiguo al actual.
func (h *DashboardHandler) MonthlyPayments(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyPayments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// HeadcountByJobRole GET /api/dashboard/empleados-por-cargo
func (h *DashboardHandler) HeadcountByJobRole(c *fiber.Ctx) error {
	out, err := h.uc.HeadcountByJobRole(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
