package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/JonasWeidner/ShopFox/internal/pkg/env"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// Client wraps the Stripe API for the handful of outbound calls this app
// makes. It is constructed once at startup and passed in explicitly; it
// holds no mutable state.
type Client struct {
	api *client.API
}

// NewClient creates a provider client for the given secret key.
func NewClient(secretKey string) (*Client, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}, nil
}

// NewClientFromEnv creates a provider client from STRIPE_SECRET_KEY.
func NewClientFromEnv() (*Client, error) {
	return NewClient(env.GetEnv("STRIPE_SECRET_KEY", ""))
}

// RetrieveProduct fetches the full product behind an unexpanded reference.
func (c *Client) RetrieveProduct(ctx context.Context, id string) (*stripe.Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	return c.api.Products.Get(id, params)
}

// RetrievePrice fetches a price, including its recurrence settings.
func (c *Client) RetrievePrice(ctx context.Context, id string) (*stripe.Price, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx
	return c.api.Prices.Get(id, params)
}

// CheckoutSessionInput carries everything a hosted checkout session needs.
// The metadata keys (itemId, userId, userEmail, priceId) are a contract the
// purchase recorder depends on exactly as named.
type CheckoutSessionInput struct {
	PriceID    string
	ItemID     string
	UserID     string
	UserEmail  string
	Recurring  bool
	SuccessURL string
	CancelURL  string
}

// CreateCheckoutSession starts a hosted checkout flow for one price.
func (c *Client) CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*stripe.CheckoutSession, error) {
	mode := stripe.CheckoutSessionModePayment
	if in.Recurring {
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(mode)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("itemId", in.ItemID)
	params.AddMetadata("userId", in.UserID)
	params.AddMetadata("userEmail", in.UserEmail)
	params.AddMetadata("priceId", in.PriceID)

	return c.api.CheckoutSessions.New(params)
}

// RetrieveCheckoutSession fetches a session for the post-payment page.
func (c *Client) RetrieveCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	return c.api.CheckoutSessions.Get(id, params)
}

// CreateProduct creates a catalog product (seed tooling). The idempotency
// key guards against duplicate rows when a seed run is re-executed.
func (c *Client) CreateProduct(ctx context.Context, name, description string, metadata map[string]string) (*stripe.Product, error) {
	params := &stripe.ProductParams{
		Name:        stripe.String(name),
		Description: stripe.String(description),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return c.api.Products.New(params)
}

// CreatePrice creates a price under a product (seed tooling).
func (c *Client) CreatePrice(ctx context.Context, productID, nickname, currency string, unitAmount int64, recurringInterval string, metadata map[string]string) (*stripe.Price, error) {
	params := &stripe.PriceParams{
		Product:    stripe.String(productID),
		Nickname:   stripe.String(nickname),
		Currency:   stripe.String(currency),
		UnitAmount: stripe.Int64(unitAmount),
	}
	if recurringInterval != "" {
		params.Recurring = &stripe.PriceRecurringParams{
			Interval: stripe.String(recurringInterval),
		}
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return c.api.Prices.New(params)
}
