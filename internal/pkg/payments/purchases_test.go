package payments

import (
	"context"
	"testing"

	"github.com/JonasWeidner/ShopFox/app/models"
	"github.com/stripe/stripe-go/v72"
)

func completedSession() *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            "cs_test_1",
		AmountTotal:   2999,
		Currency:      stripe.CurrencyUSD,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_test_1"},
		Customer:      &stripe.Customer{ID: "cus_1"},
		Metadata: map[string]string{
			"userId":  "u1",
			"priceId": "pi_1",
			"itemId":  "prod_1",
		},
	}
}

func TestCreateUserPurchase_RecordsCompletedCheckout(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPurchaseService(repo)

	row, err := svc.CreateUserPurchase(context.Background(), completedSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row == nil {
		t.Fatalf("expected a purchase row")
	}

	stored := repo.purchases[purchaseKey("u1", "pi_1")]
	if stored.UserID != "u1" ||
		stored.ProductItemID != "pi_1" ||
		stored.StripeProductID != "prod_1" ||
		stored.StripePaymentIntentID != "pi_test_1" ||
		stored.StripeSessionID != "cs_test_1" ||
		stored.StripeCustomerID != "cus_1" ||
		stored.AmountPaid != 2999 ||
		stored.Currency != "usd" ||
		stored.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("unexpected stored purchase: %+v", stored)
	}
}

func TestCreateUserPurchase_ReplayUpdatesInPlace(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPurchaseService(repo)

	if _, err := svc.CreateUserPurchase(context.Background(), completedSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := completedSession()
	second.AmountTotal = 1999
	if _, err := svc.CreateUserPurchase(context.Background(), second); err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}

	if len(repo.purchases) != 1 {
		t.Fatalf("expected exactly one purchase row, got %d", len(repo.purchases))
	}
	if got := repo.purchases[purchaseKey("u1", "pi_1")].AmountPaid; got != 1999 {
		t.Fatalf("expected replay to overwrite amount, got %d", got)
	}
}

func TestCreateUserPurchase_MissingMetadataIsNotAnError(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPurchaseService(repo)

	session := completedSession()
	session.Metadata = map[string]string{"priceId": "p1"}

	row, err := svc.CreateUserPurchase(context.Background(), session)
	if err != nil {
		t.Fatalf("missing metadata must not error, got %v", err)
	}
	if row != nil {
		t.Fatalf("expected nil result for missing metadata, got %+v", row)
	}
	if len(repo.ops) != 0 {
		t.Fatalf("expected no store mutation, got %v", repo.ops)
	}
}

func TestCreateUserPurchase_StoreErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.purchaseErr = errStore
	svc := NewPurchaseService(repo)

	if _, err := svc.CreateUserPurchase(context.Background(), completedSession()); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}
