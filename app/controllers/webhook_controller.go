package controllers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/JonasWeidner/ShopFox/app/models"
	"github.com/JonasWeidner/ShopFox/internal/pkg/env"
	"github.com/JonasWeidner/ShopFox/internal/pkg/payments"
	"github.com/gofiber/fiber/v2"
)

// HandleStripeWebhook receives signed provider events. Response contract:
// 400 for verification failures (the provider will not retry those into
// success), 500 for configuration problems and retryable handler failures,
// 200 {"received":true} otherwise — including when a checkout-completion
// handler failed internally, since the payment already succeeded upstream.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	event, err := payments.ConstructEvent(rawBody, signature, secret)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrMissingSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_signature"})
		case errors.Is(err, payments.ErrMissingWebhookSecret):
			log.Printf("[webhook] STRIPE_WEBHOOK_SECRET is not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "missing_webhook_secret"})
		default:
			log.Printf("[webhook] signature verification failed: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature"})
		}
	}

	created, stored, err := paymentService.RecordWebhookEvent(ctx, payments.WebhookEventInput{
		Provider:        models.PaymentProviderStripe,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}

	// Re-dispatch redeliveries only if the first attempt did not finish
	// cleanly; a successfully processed event id is acknowledged as-is.
	if !created && stored.ProcessedAt != nil && stored.ProcessingError == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true, "duplicate": true})
	}

	dispatchErr := paymentDispatcher.Dispatch(ctx, event)
	if err := paymentService.MarkWebhookProcessed(ctx, stored.ID, dispatchErr); err != nil {
		log.Printf("[webhook] failed to mark event %d processed: %v", stored.ID, err)
	}
	if dispatchErr != nil {
		log.Printf("[webhook] processing %s event %s failed: %v", event.Type, event.ID, dispatchErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_processing_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}
