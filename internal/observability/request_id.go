package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID assigns every request a correlation id, echoed in the
// X-Request-Id response header and attached to request logs. An id supplied
// by the caller is kept so gateway traces line up.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set("X-Request-Id", id)
		return c.Next()
	}
}

// RequestIDFromContext returns the correlation id assigned by RequestID.
func RequestIDFromContext(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
