package http

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/application/reports"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// IssueHandler entregas y devoluciones de activos.
type IssueHandler struct {
	responder
	engine  *lifecycle.Engine
	custody *usecase.CustodyUseCase
	reports *reports.Service
}

// NewIssueHandler construye el handler.
func NewIssueHandler(engine *lifecycle.Engine, custody *usecase.CustodyUseCase, rep *reports.Service, r responder) *IssueHandler {
	return &IssueHandler{responder: r, engine: engine, custody: custody, reports: rep}
}

// Create godoc
// @Summary      Entregar activo a un empleado
// @Description  El activo debe estar IN_STOCK y sin entrega activa; queda ISSUED.
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIssueRequest  true  "Activo y empleado"
// @Success      201   {object}  dto.IssueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/issues [post]
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssueRequest
	if err := bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.engine.Issue(c.UserContext(), GetEmail(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Entregas activas
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.IssueResponse
// @Router       /api/issues [get]
func (h *IssueHandler) List(c *fiber.Ctx) error {
	out, err := h.custody.ActiveIssues(c.UserContext(), pageFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out.Items)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.IssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issues/{id} [get]
func (h *IssueHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.custody.GetIssue(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver activo
// @Description  Cierra la entrega y el activo vuelve a IN_STOCK.
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true   "ID de la entrega"
// @Param        body  body  dto.ReturnIssueRequest  false  "Observaciones"
// @Success      200   {object}  dto.IssueResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/issues/{id}/return [post]
func (h *IssueHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnIssueRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &in); err != nil {
			return h.fail(c, err)
		}
	}
	out, err := h.engine.Return(c.UserContext(), GetEmail(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Form godoc
// @Summary      Acta de entrega en PDF
// @Tags         issues
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issues/{id}/form [get]
func (h *IssueHandler) Form(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.reports.IssueFormPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	// El nombre incluye códigos digitados por el usuario: FormatMediaType los escapa.
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	return c.Send(pdfBytes)
}
