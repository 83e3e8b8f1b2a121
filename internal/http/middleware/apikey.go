package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader carries the service-level access key.
const APIKeyHeader = "X-Api-Key"

// APIKey guards management routes with a single opaque key, supplied either
// in the header or as a ?code= query parameter. An empty configured key
// disables the guard, which keeps local development friction-free.
func APIKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}

		provided := c.Get(APIKeyHeader)
		if provided == "" {
			provided = c.Query("code")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid api key",
			})
		}
		return c.Next()
	}
}
