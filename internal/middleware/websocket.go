package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade admits websocket upgrades for games that exist. known
// reports whether a game ID is live; EnsurePlayerID must run first.
func WebSocketUpgrade(known func(gameID string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if c.Locals(PlayerIDKey) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		gameID := c.Params("gameId")
		switch {
		case gameID == "":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		case known != nil && !known(gameID):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found: " + gameID,
			})
		}

		return c.Next()
	}
}
