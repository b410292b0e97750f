package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/licensing"
)

// SoftwareHandler licencias de software y su asignación a activos.
type SoftwareHandler struct {
	responder
	svc *licensing.Service
}

// NewSoftwareHandler construye el handler.
func NewSoftwareHandler(svc *licensing.Service, r responder) *SoftwareHandler {
	return &SoftwareHandler{responder: r, svc: svc}
}

// Create godoc
// @Summary      Registrar licencia
// @Tags         software
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSoftwareRequest  true  "Nombre, versión, cupos"
// @Success      201   {object}  dto.SoftwareResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/software [post]
func (h *SoftwareHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSoftwareRequest
	if err := bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.svc.Register(c.UserContext(), GetEmail(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar licencias
// @Tags         software
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.SoftwareResponse
// @Router       /api/software [get]
func (h *SoftwareHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Licencia con sus asignaciones
// @Tags         software
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la licencia"
// @Success      200  {object}  dto.SoftwareDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/software/{id} [get]
func (h *SoftwareHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar licencia a un activo
// @Tags         software
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la licencia"
// @Param        body  body  dto.AssignSoftwareRequest  true  "Código del activo"
// @Success      201   {object}  dto.SoftwareAssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/software/{id}/assignments [post]
func (h *SoftwareHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignSoftwareRequest
	if err := bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.svc.Assign(c.UserContext(), GetEmail(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Unassign godoc
// @Summary      Liberar licencia de un activo
// @Tags         software
// @Security     Bearer
// @Produce      json
// @Param        id    path  string  true  "ID de la licencia"
// @Param        code  path  string  true  "Código del activo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/software/{id}/assignments/{code} [delete]
func (h *SoftwareHandler) Unassign(c *fiber.Ctx) error {
	if err := h.svc.Unassign(c.UserContext(), GetEmail(c), c.Params("id"), c.Params("code")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "licencia liberada"})
}
