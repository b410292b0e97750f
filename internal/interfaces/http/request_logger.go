package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Si la cadena devuelve error (ruta inexistente, pánico recuperado, …) lo resuelve con el
// ErrorHandler de la app antes de leer el status, para registrar el código real.
// /health no se registra para no llenar el log con los chequeos del balanceador.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		if c.Path() == "/health" {
			return nil
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
