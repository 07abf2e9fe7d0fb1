package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade lets only websocket upgrade requests through to the
// socket handlers. Everything else gets 426 Upgrade Required.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Locals survive the upgrade, so the socket handler can log with it
		if c.Locals("requestID") == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "request ID is missing",
			})
		}
		return c.Next()
	}
}
