package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

const internalMessage = "error interno del servidor"

// errorMapping código HTTP y código de error para cada error de dominio.
// El orden importa: los errores más específicos van primero.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrMissingField, fiber.StatusBadRequest, "MISSING_FIELD"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrAlreadyIssued, fiber.StatusConflict, "ALREADY_ISSUED"},
	{domain.ErrNoSeatsAvailable, fiber.StatusConflict, "NO_SEATS_AVAILABLE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// responder traduce errores a respuestas {"code","message"}. Los 500 se registran y el cliente
// recibe un mensaje genérico.
type responder struct {
	log *logger.Logger
}

func newResponder(log *logger.Logger) responder {
	if log == nil {
		log = logger.Nop()
	}
	return responder{log: log}
}

func (r responder) fail(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	r.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage})
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (rutas inexistentes, panics recuperados).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	r := newResponder(log)
	return func(c *fiber.Ctx, err error) error {
		return r.fail(c, err)
	}
}

// bind parsea el body JSON y aplica las reglas validate del DTO.
func bind(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	return dto.Validate(in)
}

// pageFrom lee limit/offset de la query (por defecto 20/0, máximo 100).
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
