package middleware

import (
	"crypto/subtle"

	"github.com/campusmatch/college-discovery-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// AdminKey guards operator endpoints (cache bust) with a shared key passed
// in the X-Admin-Key header. When no key is configured the endpoints are
// disabled entirely rather than left open.
func AdminKey(configuredKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if configuredKey == "" {
			return response.Unauthorized(c, "Admin endpoints are not configured")
		}

		provided := c.Get("X-Admin-Key")
		if provided == "" {
			return response.Unauthorized(c, "Missing admin key")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(configuredKey)) != 1 {
			return response.Unauthorized(c, "Invalid admin key")
		}

		return c.Next()
	}
}
