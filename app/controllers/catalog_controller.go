package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JonasWeidner/ShopFox/internal/pkg/cache"
	"github.com/JonasWeidner/ShopFox/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

const (
	productCacheKey = "catalog:products"
	productCacheTTL = time.Minute
)

// HandleListProducts returns the synced catalog (products with price items).
// The catalog only changes via provider webhooks, so a short cache is safe.
func HandleListProducts(c *fiber.Ctx) error {
	if cached, err := cache.Get(productCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := paymentService.ListCatalog(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load products"})
	}

	body, err := json.Marshal(fiber.Map{"products": products})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load products"})
	}
	_ = cache.Set(productCacheKey, string(body), productCacheTTL)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// HandleListPurchases returns the signed-in user's purchase history.
func HandleListPurchases(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	purchases, err := paymentService.Purchases.ListUserPurchases(ctx, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load purchases"})
	}

	return c.JSON(fiber.Map{"purchases": purchases})
}
