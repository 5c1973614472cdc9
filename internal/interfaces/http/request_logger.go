package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

// RequestLogger adjunta a cada request un sublogger con request_id, method y path, y escribe
// una línea por request con status y latencia. Debe ir después del middleware requestid.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := logger.Wrap(log.With().
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger())
		c.Locals(LocalLogger, reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := logFor(c).Info()
		if status >= fiber.StatusInternalServerError {
			ev = logFor(c).Warn()
		}
		ev.Int("status", status).Dur("latency", time.Since(start)).Msg("request")
		return err
	}
}
