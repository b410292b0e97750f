package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/reports"
)

// ReportHandler exportaciones CSV.
type ReportHandler struct {
	responder
	svc *reports.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(svc *reports.Service, r responder) *ReportHandler {
	return &ReportHandler{responder: r, svc: svc}
}

// CSV godoc
// @Summary      Exportar CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        type  query  string  true  "assets | issued | garbage | transfers"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/csv [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	data, filename, err := h.svc.ExportCSV(c.UserContext(), c.Query("type"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}
