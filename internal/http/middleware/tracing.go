package middleware

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
)

// Tracing opens a server span per request unless disabled, in which case it is a Noop.
func Tracing(enabled bool) fiber.Handler {
	if !enabled {
		return Noop()
	}
	return otelfiber.Middleware(
		otelfiber.WithNext(func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics" || c.Path() == "/healthz"
		}),
	)
}
