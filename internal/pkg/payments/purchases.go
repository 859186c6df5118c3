package payments

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/JonasWeidner/ShopFox/app/models"
	"github.com/stripe/stripe-go/v72"
)

// PurchaseService records completed checkout sessions as user purchases.
type PurchaseService struct {
	repo Repository
}

// NewPurchaseService creates a purchase recorder from an injected repository.
func NewPurchaseService(repo Repository) *PurchaseService {
	return &PurchaseService{repo: repo}
}

// CreateUserPurchase upserts a purchase row keyed on
// (user_id, product_item_id) from a completed checkout session. The metadata
// contract ({userId, priceId, itemId}) is set by the checkout-session
// creator; a missing userId or priceId indicates an upstream bug, so the
// call logs and returns nil rather than erroring — a provider retry cannot
// fix absent metadata.
func (s *PurchaseService) CreateUserPurchase(ctx context.Context, session *stripe.CheckoutSession) (*models.UserPurchase, error) {
	_ = ctx
	if session == nil {
		return nil, nil
	}

	userID := strings.TrimSpace(session.Metadata["userId"])
	priceID := strings.TrimSpace(session.Metadata["priceId"])
	if userID == "" || priceID == "" {
		log.Printf("[payments] checkout session %s is missing purchase metadata (userId=%q priceId=%q), skipping",
			session.ID, userID, priceID)
		return nil, nil
	}

	currency := string(session.Currency)
	if currency == "" {
		currency = "usd"
	}

	purchase := &models.UserPurchase{
		UserID:          userID,
		ProductItemID:   priceID,
		StripeProductID: strings.TrimSpace(session.Metadata["itemId"]),
		StripeSessionID: session.ID,
		AmountPaid:      session.AmountTotal,
		Currency:        currency,
		PaymentStatus:   models.PaymentStatusCompleted,
		PurchasedAt:     time.Now(),
	}
	if session.PaymentIntent != nil {
		purchase.StripePaymentIntentID = session.PaymentIntent.ID
	}
	if session.Customer != nil {
		purchase.StripeCustomerID = session.Customer.ID
	}

	if err := s.repo.UpsertUserPurchase(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListUserPurchases returns a user's purchase history, newest first.
func (s *PurchaseService) ListUserPurchases(ctx context.Context, userID string) ([]models.UserPurchase, error) {
	_ = ctx
	return s.repo.ListPurchasesByUser(userID)
}
