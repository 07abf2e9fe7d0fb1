package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// EnsureRequestID tags every request with an ID, taken from the
// X-Request-ID header when the client sent one. The ID is stored in
// Locals under "requestID" and echoed in the response.
func EnsureRequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if requestID is already set
		if id, ok := c.Locals("requestID").(string); ok && id != "" {
			return c.Next()
		}

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Locals("requestID", requestID)
		c.Set(RequestIDHeader, requestID)
		return c.Next()
	}
}
