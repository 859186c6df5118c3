package payments

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stripe/stripe-go/v72"
)

func eventWithObject(t *testing.T, eventType string, object string) stripe.Event {
	t.Helper()
	return stripe.Event{
		ID:   "evt_" + eventType,
		Type: eventType,
		Data: &stripe.EventData{Raw: json.RawMessage(object)},
	}
}

func newTestDispatcher(repo *fakeRepo, retriever *fakeProductRetriever) *Dispatcher {
	return NewDispatcher(NewCatalogService(repo, retriever), NewPurchaseService(repo))
}

func TestDispatch_ProductEventsReachCatalog(t *testing.T) {
	repo := newFakeRepo()
	d := newTestDispatcher(repo, &fakeProductRetriever{})

	ev := eventWithObject(t, EventProductCreated, `{"id":"prod_1","name":"Premium Membership"}`)
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.products["prod_1"]; !ok {
		t.Fatalf("expected product to be synced")
	}

	ev = eventWithObject(t, EventProductDeleted, `{"id":"prod_1"}`)
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.products["prod_1"]; ok {
		t.Fatalf("expected product to be deleted")
	}
}

func TestDispatch_PriceEventsReachCatalog(t *testing.T) {
	repo := newFakeRepo()
	retriever := &fakeProductRetriever{
		products: map[string]*stripe.Product{
			"prod_1": {ID: "prod_1", Name: "Premium Membership"},
		},
	}
	d := newTestDispatcher(repo, retriever)

	ev := eventWithObject(t, EventPriceCreated, `{"id":"price_1","unit_amount":9999,"currency":"usd","product":"prod_1"}`)
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.items["price_1"]; !ok {
		t.Fatalf("expected price to be synced")
	}
	if _, ok := repo.products["prod_1"]; !ok {
		t.Fatalf("expected referenced product to be synced first")
	}

	ev = eventWithObject(t, EventPriceDeleted, `{"id":"price_1"}`)
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.items["price_1"]; ok {
		t.Fatalf("expected price to be deleted")
	}
}

func TestDispatch_CheckoutCompletedRecordsPurchase(t *testing.T) {
	repo := newFakeRepo()
	d := newTestDispatcher(repo, &fakeProductRetriever{})

	ev := eventWithObject(t, EventCheckoutSessionCompleted,
		`{"id":"cs_test_1","amount_total":2999,"currency":"usd","payment_intent":"pi_test_1","customer":"cus_1","metadata":{"userId":"u1","priceId":"pi_1","itemId":"prod_1"}}`)
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := repo.purchases[purchaseKey("u1", "pi_1")]
	if !ok {
		t.Fatalf("expected purchase to be recorded")
	}
	if stored.StripeSessionID != "cs_test_1" || stored.StripePaymentIntentID != "pi_test_1" ||
		stored.StripeCustomerID != "cus_1" || stored.AmountPaid != 2999 || stored.StripeProductID != "prod_1" {
		t.Fatalf("unexpected purchase: %+v", stored)
	}
}

func TestDispatch_PurchaseStoreFailureIsSwallowed(t *testing.T) {
	repo := newFakeRepo()
	repo.purchaseErr = errStore
	d := newTestDispatcher(repo, &fakeProductRetriever{})

	ev := eventWithObject(t, EventCheckoutSessionCompleted,
		`{"id":"cs_test_1","metadata":{"userId":"u1","priceId":"pi_1"}}`)
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("checkout-completion failures must not fail the webhook, got %v", err)
	}
}

func TestDispatch_CatalogStoreFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.productErr = errStore
	d := newTestDispatcher(repo, &fakeProductRetriever{})

	ev := eventWithObject(t, EventProductCreated, `{"id":"prod_1","name":"X"}`)
	if err := d.Dispatch(context.Background(), ev); err == nil {
		t.Fatalf("expected catalog failure to propagate for provider retry")
	}
}

func TestDispatch_PaymentIntentEventsAreLoggedOnly(t *testing.T) {
	repo := newFakeRepo()
	d := newTestDispatcher(repo, &fakeProductRetriever{})

	for _, eventType := range []string{EventPaymentIntentSucceeded, EventPaymentIntentFailed} {
		ev := eventWithObject(t, eventType, `{"id":"pi_test_1","amount":2999}`)
		if err := d.Dispatch(context.Background(), ev); err != nil {
			t.Fatalf("unexpected error for %s: %v", eventType, err)
		}
	}
	if len(repo.ops) != 0 {
		t.Fatalf("expected no store writes, got %v", repo.ops)
	}
}

func TestDispatch_UnhandledTypeIsAcknowledged(t *testing.T) {
	repo := newFakeRepo()
	d := newTestDispatcher(repo, &fakeProductRetriever{})

	ev := eventWithObject(t, "customer.created", `{"id":"cus_1"}`)
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.ops) != 0 {
		t.Fatalf("expected no store writes, got %v", repo.ops)
	}
}

func TestDispatch_MalformedObjectPropagates(t *testing.T) {
	repo := newFakeRepo()
	d := newTestDispatcher(repo, &fakeProductRetriever{})

	ev := eventWithObject(t, EventProductCreated, `{not json`)
	if err := d.Dispatch(context.Background(), ev); err == nil {
		t.Fatalf("expected decode failure to propagate")
	}

	ev = stripe.Event{Type: EventProductCreated}
	if err := d.Dispatch(context.Background(), ev); err == nil {
		t.Fatalf("expected missing data object to propagate")
	}
}
