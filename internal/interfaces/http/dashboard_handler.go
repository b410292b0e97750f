package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Activos-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	responder
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, r responder) *DashboardHandler {
	return &DashboardHandler{responder: r, uc: uc}
}

// GetSummary devuelve el resumen del inventario de TI.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (conteos por estado, entregas activas, traspasos pendientes,
// garantías por vencer y uso de licencias). Las consultas corren en paralelo.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(summary)
}
