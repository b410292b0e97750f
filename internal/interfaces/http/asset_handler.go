package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// AssetHandler alta, consulta, baja e historial de activos.
type AssetHandler struct {
	responder
	engine *lifecycle.Engine
	assets *usecase.AssetUseCase
	feed   *history.Feed
}

// NewAssetHandler construye el handler.
func NewAssetHandler(engine *lifecycle.Engine, assets *usecase.AssetUseCase, feed *history.Feed, r responder) *AssetHandler {
	return &AssetHandler{responder: r, engine: engine, assets: assets, feed: feed}
}

// Create godoc
// @Summary      Registrar activo
// @Description  Alta en estado IN_STOCK. Si no se envía warranty_end se calcula con warranty_start + warranty_years.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAssetRequest  true  "Datos del activo"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterAssetRequest
	if err := bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.engine.Register(c.UserContext(), GetEmail(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar activos
// @Description  Más recientes primero. El total va en el header X-Total-Count.
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "IN_STOCK | ISSUED | GARBAGE"
// @Param        q       query  string  false  "Busca en código, serie, marca, modelo y proveedor"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.AssetResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	out, err := h.assets.List(c.UserContext(), c.Query("status"), c.Query("q"), pageFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("X-Total-Count", strconv.Itoa(out.Page.Total))
	return c.JSON(out.Items)
}

// GetByID godoc
// @Summary      Obtener activo
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.assets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Custody godoc
// @Summary      Entregas del activo (activas y devueltas)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {array}  dto.IssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/issues [get]
func (h *AssetHandler) Custody(c *fiber.Ctx) error {
	out, err := h.assets.Custody(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// MarkGarbage godoc
// @Summary      Dar de baja un activo
// @Description  Solo desde IN_STOCK. La baja es definitiva.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del activo"
// @Param        body  body  dto.MarkGarbageRequest  true  "Motivo"
// @Success      200   {object}  dto.GarbageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/garbage [post]
func (h *AssetHandler) MarkGarbage(c *fiber.Ctx) error {
	var in dto.MarkGarbageRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &in); err != nil {
			return h.fail(c, err)
		}
	}
	out, err := h.engine.MarkGarbage(c.UserContext(), GetEmail(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un activo
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        code   path   string  true   "Código del activo"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200    {array}  dto.HistoryEventResponse
// @Router       /api/assets/code/{code}/history [get]
func (h *AssetHandler) History(c *fiber.Ctx) error {
	out, err := h.feed.ByAsset(c.UserContext(), c.Params("code"), c.QueryInt("limit", 50))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// RecentHistory godoc
// @Summary      Historial general
// @Description  Más recientes primero.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.HistoryEventResponse
// @Router       /api/history [get]
func (h *AssetHandler) RecentHistory(c *fiber.Ctx) error {
	p := pageFrom(c)
	out, err := h.feed.Recent(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
