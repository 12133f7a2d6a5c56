package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"collabcore/internal/logging"
)

const (
	RequestIDHeader   = "X-Request-ID"
	RequestIDLocalKey = "request_id"
)

// RequestID tags each request with the inbound X-Request-ID, or a fresh uuid.
// The id is echoed on the response, kept in locals for the request logger and put on
// the user context so engine logs written for this request carry it too.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, id)
		c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}
