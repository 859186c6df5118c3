package middleware

import (
	"github.com/JonasWeidner/ShopFox/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth rejects requests without an authenticated user.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}
	return c.Next()
}
