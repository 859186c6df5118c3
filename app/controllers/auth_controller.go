package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/JonasWeidner/ShopFox/internal/pkg/session"
	"github.com/JonasWeidner/ShopFox/internal/pkg/usercontext"
	"github.com/JonasWeidner/ShopFox/internal/pkg/utils"
)

// HandleOAuthCallback completes the provider flow and logs the user in.
// Identity lives at the provider; the session only carries the subject id
// and email that purchases and checkout metadata reference.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	userID := u.Provider + ":" + u.UserID
	if err := session.SetSessionValue(c, usercontext.KeyUserID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to persist session")
	}
	if err := session.SetSessionValue(c, usercontext.KeyUserEmail, u.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to persist session")
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleLogout clears the session.
func HandleLogout(c *fiber.Ctx) error {
	_ = gothfiber.Logout(c)
	_ = session.ClearSession(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleCurrentUser returns the authenticated user's context.
func HandleCurrentUser(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	return c.JSON(fiber.Map{
		"userId":    uc.UserID,
		"email":     uc.Email,
		"avatarUrl": utils.GravatarURL(uc.Email, 200),
	})
}
