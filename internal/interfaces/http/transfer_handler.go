package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// TransferHandler traspasos entre empleados y listado de bajas.
type TransferHandler struct {
	responder
	engine  *lifecycle.Engine
	custody *usecase.CustodyUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(engine *lifecycle.Engine, custody *usecase.CustodyUseCase, r responder) *TransferHandler {
	return &TransferHandler{responder: r, engine: engine, custody: custody}
}

// Create godoc
// @Summary      Traspasar activo
// @Description  mode=immediate (por defecto) deja el traspaso COMPLETED; mode=request crea una solicitud Pending.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Activo y empleado destino"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.engine.CreateTransfer(c.UserContext(), GetEmail(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Decide godoc
// @Summary      Aprobar o rechazar una solicitud de traspaso
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del traspaso"
// @Param        body  body  dto.DecideTransferRequest  true  "Approved | Rejected"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [patch]
func (h *TransferHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideTransferRequest
	if err := bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.engine.DecideTransfer(c.UserContext(), GetEmail(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar traspasos
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Pending | Approved | Rejected | COMPLETED"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	out, err := h.custody.Transfers(c.UserContext(), c.Query("status"), pageFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out.Items)
}

// Garbage godoc
// @Summary      Listar bajas
// @Tags         garbage
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.GarbageResponse
// @Router       /api/garbage [get]
func (h *TransferHandler) Garbage(c *fiber.Ctx) error {
	out, err := h.custody.Garbage(c.UserContext(), pageFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out.Items)
}
