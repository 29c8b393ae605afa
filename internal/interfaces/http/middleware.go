package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/pkg/logger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RequestLogger registra cada petición con método, ruta, estado, latencia y request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("ip", c.IP()).
			Msg("http")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("requestid").(string); ok {
		return v
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// RateLimit limita peticiones por IP con un store en memoria. rate en formato "300-M".
func RateLimit(rate string) (fiber.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), r)

	return func(c *fiber.Ctx) error {
		ctx, err := instance.Get(c.Context(), c.IP())
		if err != nil {
			// Sin store de límites no se bloquea al cliente.
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
		if ctx.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde",
			})
		}
		return c.Next()
	}, nil
}
