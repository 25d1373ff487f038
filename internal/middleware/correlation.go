package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CorrelationHeader carries a caller-chosen id across service hops.
const CorrelationHeader = "X-Correlation-ID"

// CorrelationID reuses the inbound X-Correlation-ID header or mints a UUID, stores it in
// locals and echoes it on the response.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(CorrelationHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Locals("correlationID", id)
		c.Set(CorrelationHeader, id)
		return c.Next()
	}
}
