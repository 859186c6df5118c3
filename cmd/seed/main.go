// Command seed creates the demo catalog (products and prices) at the payment
// provider. The provider then emits product.created/price.created webhooks,
// which is how the rows end up in the local store — this tool never writes
// to the database directly.
package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/JonasWeidner/ShopFox/internal/pkg/env"
	"github.com/JonasWeidner/ShopFox/internal/pkg/payments"
	"github.com/go-playground/validator/v10"
)

type priceConfig struct {
	Nickname          string   `validate:"required"`
	UnitAmount        int64    `validate:"gt=0"`
	Currency          string   `validate:"required,len=3"`
	RecurringInterval string   `validate:"omitempty,oneof=month year"`
	CustomID          string   `validate:"required"`
	Description       string   ``
	Features          []string ``
	Popular           bool     ``
}

type productConfig struct {
	Name        string        `validate:"required"`
	Description string        `validate:"required"`
	CustomID    string        `validate:"required"`
	Icon        string        ``
	Prices      []priceConfig `validate:"min=1,dive"`
}

var catalog = []productConfig{
	{
		Name:        "Premium Membership",
		Description: "Access to all premium features with unlimited usage and priority support",
		CustomID:    "premium-membership",
		Icon:        "crown",
		Prices: []priceConfig{
			{
				Nickname:          "Premium Monthly",
				UnitAmount:        2999,
				Currency:          "usd",
				RecurringInterval: "month",
				CustomID:          "premium-monthly",
				Description:       "Perfect for trying out premium features",
				Features:          []string{"All premium features", "Priority support", "Monthly billing"},
			},
			{
				Nickname:          "Premium Yearly",
				UnitAmount:        9999,
				Currency:          "usd",
				RecurringInterval: "year",
				CustomID:          "premium-yearly",
				Description:       "Best value for regular users",
				Features:          []string{"All premium features", "Priority support", "Save 72%", "Annual billing"},
				Popular:           true,
			},
			{
				Nickname:    "Premium Lifetime",
				UnitAmount:  19999,
				Currency:    "usd",
				CustomID:    "premium-lifetime",
				Description: "One-time payment for lifetime access",
				Features:    []string{"All premium features", "Priority support", "One-time payment", "Lifetime access"},
			},
		},
	},
	{
		Name:        "Cloud Storage",
		Description: "Secure cloud storage for your files and documents",
		CustomID:    "cloud-storage",
		Icon:        "cloud",
		Prices: []priceConfig{
			{
				Nickname:    "50GB Storage",
				UnitAmount:  999,
				Currency:    "usd",
				CustomID:    "storage-50gb",
				Description: "Perfect for personal use",
				Features:    []string{"50GB storage", "File sync", "Basic sharing"},
			},
			{
				Nickname:    "100GB Storage",
				UnitAmount:  1999,
				Currency:    "usd",
				CustomID:    "storage-100gb",
				Description: "Great for small teams",
				Features:    []string{"100GB storage", "File sync", "Advanced sharing", "Version history"},
				Popular:     true,
			},
			{
				Nickname:    "500GB Storage",
				UnitAmount:  4999,
				Currency:    "usd",
				CustomID:    "storage-500gb",
				Description: "For power users and businesses",
				Features:    []string{"500GB storage", "File sync", "Advanced sharing", "Version history", "Priority support"},
			},
		},
	},
}

func main() {
	env.SetupEnvFile()

	validate := validator.New()
	for _, product := range catalog {
		if err := validate.Struct(product); err != nil {
			log.Fatalf("invalid catalog config for %q: %v", product.Name, err)
		}
	}

	client, err := payments.NewClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create provider client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, cfg := range catalog {
		product, err := client.CreateProduct(ctx, cfg.Name, cfg.Description, map[string]string{
			"custom_id": cfg.CustomID,
			"icon":      cfg.Icon,
		})
		if err != nil {
			log.Fatalf("failed to create product %q: %v", cfg.Name, err)
		}
		log.Printf("created product %s (%s)", product.ID, cfg.Name)

		for _, p := range cfg.Prices {
			metadata := map[string]string{
				"custom_id":   p.CustomID,
				"description": p.Description,
			}
			if len(p.Features) > 0 {
				features, err := json.Marshal(p.Features)
				if err != nil {
					log.Fatalf("failed to encode features for %q: %v", p.Nickname, err)
				}
				metadata["features"] = string(features)
			}
			if p.Popular {
				metadata["popular"] = "true"
			}

			price, err := client.CreatePrice(ctx, product.ID, p.Nickname, p.Currency, p.UnitAmount, p.RecurringInterval, metadata)
			if err != nil {
				log.Fatalf("failed to create price %q: %v", p.Nickname, err)
			}
			log.Printf("  created price %s (%s, %d %s)", price.ID, p.Nickname, p.UnitAmount, p.Currency)
		}
	}

	log.Println("catalog seeded; webhook events will sync it into the store")
}
