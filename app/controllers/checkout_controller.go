package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/JonasWeidner/ShopFox/internal/pkg/env"
	"github.com/JonasWeidner/ShopFox/internal/pkg/payments"
	"github.com/JonasWeidner/ShopFox/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

type createCheckoutSessionRequest struct {
	PriceID string `json:"priceId" validate:"required"`
	ItemID  string `json:"itemId" validate:"required"`
}

// HandleCreateCheckoutSession starts a hosted checkout flow for the signed-in
// user. The metadata written here ({itemId, userId, userEmail, priceId}) is
// the contract the purchase recorder reads on checkout completion.
func HandleCreateCheckoutSession(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not authenticated"})
	}

	var req createCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price ID and Item ID are required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// The price type decides payment vs subscription mode.
	price, err := paymentClient.RetrievePrice(ctx, req.PriceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating checkout session"})
	}

	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	session, err := paymentClient.CreateCheckoutSession(ctx, payments.CheckoutSessionInput{
		PriceID:    req.PriceID,
		ItemID:     req.ItemID,
		UserID:     userCtx.UserID,
		UserEmail:  userCtx.Email,
		Recurring:  price.Recurring != nil,
		SuccessURL: base + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  base,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating checkout session"})
	}

	return c.JSON(fiber.Map{"url": session.URL})
}

// HandleGetCheckoutSession returns the session summary for the post-payment
// success page.
func HandleGetCheckoutSession(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session ID is required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	session, err := paymentClient.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch checkout session"})
	}

	return c.JSON(fiber.Map{
		"id":           session.ID,
		"amount_total": session.AmountTotal,
		"currency":     session.Currency,
		"status":       session.Status,
		"metadata":     session.Metadata,
	})
}
