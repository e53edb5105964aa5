package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// PlayerIDKey is the fiber.Ctx locals key the player ID is stored under.
const PlayerIDKey = "playerID"

// EnsurePlayerID requires a client-chosen player ID, from the X-Player-ID
// header or the playerId query parameter, and stores it in the request
// locals.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(PlayerIDKey) != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		// header and query values alias the pooled request buffer
		c.Locals(PlayerIDKey, utils.CopyString(playerID))
		return c.Next()
	}
}
