package middleware

import (
	"strings"

	"github.com/JonasWeidner/ShopFox/internal/pkg/session"
	"github.com/JonasWeidner/ShopFox/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware sets up the user context for every request from the
// session written at OAuth sign-in.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	userID := session.GetSessionValue(c, usercontext.KeyUserID)
	if userID == "" {
		c.Locals(usercontext.KeyContext, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	c.Locals(usercontext.KeyContext, usercontext.UserContext{
		UserID:     userID,
		Email:      session.GetSessionValue(c, usercontext.KeyUserEmail),
		IsLoggedIn: true,
	})
	return c.Next()
}
