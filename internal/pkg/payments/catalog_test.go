package payments

import (
	"context"
	"testing"

	"github.com/stripe/stripe-go/v72"
)

func TestSyncProduct_UpsertsAllFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCatalogService(repo, &fakeProductRetriever{})

	row, err := svc.SyncProduct(context.Background(), &stripe.Product{
		ID:          "prod_1",
		Name:        "Premium Membership",
		Description: "Access to all premium features",
		Images:      []string{"https://cdn.example/crown.png"},
		Metadata:    map[string]string{"custom_id": "premium-membership"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.CustomID != "premium-membership" || row.Icon != "https://cdn.example/crown.png" {
		t.Fatalf("unexpected row: %+v", row)
	}

	stored, ok := repo.products["prod_1"]
	if !ok {
		t.Fatalf("expected product row to be stored")
	}
	if stored.Name != "Premium Membership" {
		t.Fatalf("unexpected stored name %q", stored.Name)
	}
}

func TestSyncPrice_CreatesMissingProductFirst(t *testing.T) {
	repo := newFakeRepo()
	retriever := &fakeProductRetriever{
		products: map[string]*stripe.Product{
			"prod_1": {ID: "prod_1", Name: "Premium Membership"},
		},
	}
	svc := NewCatalogService(repo, retriever)

	// Webhook payloads carry the product as an unexpanded reference.
	row, err := svc.SyncPrice(context.Background(), &stripe.Price{
		ID:         "price_1",
		Nickname:   "Premium Yearly",
		UnitAmount: 9999,
		Currency:   stripe.CurrencyUSD,
		Product:    &stripe.Product{ID: "prod_1"},
		Recurring:  &stripe.PriceRecurring{Interval: stripe.PriceRecurringIntervalYear},
		Metadata: map[string]string{
			"custom_id": "premium-yearly",
			"features":  `["All premium features","Save 72%"]`,
			"popular":   "true",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(retriever.calls) != 1 || retriever.calls[0] != "prod_1" {
		t.Fatalf("expected one product lookup for prod_1, got %v", retriever.calls)
	}
	if len(repo.ops) != 2 || repo.ops[0] != "product:prod_1" || repo.ops[1] != "item:price_1" {
		t.Fatalf("expected product row before price row, got ops %v", repo.ops)
	}
	if row.RecurringInterval != "year" || !row.Popular {
		t.Fatalf("unexpected row: %+v", row)
	}
	if len(row.Features) != 2 || row.Features[0] != "All premium features" {
		t.Fatalf("unexpected features: %v", row.Features)
	}
}

func TestSyncPrice_ExpandedProductSkipsLookup(t *testing.T) {
	repo := newFakeRepo()
	retriever := &fakeProductRetriever{}
	svc := NewCatalogService(repo, retriever)

	_, err := svc.SyncPrice(context.Background(), &stripe.Price{
		ID:         "price_2",
		UnitAmount: 999,
		Currency:   stripe.CurrencyUSD,
		Product:    &stripe.Product{ID: "prod_1", Name: "Cloud Storage"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retriever.calls) != 0 {
		t.Fatalf("expected no provider lookup for expanded product, got %v", retriever.calls)
	}

	item, ok := repo.items["price_2"]
	if !ok {
		t.Fatalf("expected price row to be stored")
	}
	if item.ProductID != "prod_1" {
		t.Fatalf("unexpected product reference %q", item.ProductID)
	}
	if item.Name != "Price for price_2" {
		t.Fatalf("expected fallback name, got %q", item.Name)
	}
}

func TestSyncPrice_MalformedFeaturesDefaultsToEmpty(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCatalogService(repo, &fakeProductRetriever{})

	row, err := svc.SyncPrice(context.Background(), &stripe.Price{
		ID:       "price_3",
		Currency: stripe.CurrencyUSD,
		Product:  &stripe.Product{ID: "prod_1", Name: "Cloud Storage"},
		Metadata: map[string]string{"features": `not-json`, "popular": "yes"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(row.Features) != 0 {
		t.Fatalf("expected empty feature list, got %v", row.Features)
	}
	if row.Popular {
		t.Fatalf("expected popular flag to require the literal string \"true\"")
	}
}

func TestDeleteProduct_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCatalogService(repo, &fakeProductRetriever{})

	if err := svc.DeleteProduct(context.Background(), "prod_missing"); err != nil {
		t.Fatalf("expected delete of unknown product to succeed, got %v", err)
	}
	if err := svc.DeletePrice(context.Background(), "price_missing"); err != nil {
		t.Fatalf("expected delete of unknown price to succeed, got %v", err)
	}
}

func TestSyncPrice_ProviderLookupFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	retriever := &fakeProductRetriever{}
	svc := NewCatalogService(repo, retriever)

	_, err := svc.SyncPrice(context.Background(), &stripe.Price{
		ID:      "price_4",
		Product: &stripe.Product{ID: "prod_unknown"},
	})
	if err == nil {
		t.Fatalf("expected error when the product cannot be resolved")
	}
	if len(repo.ops) != 0 {
		t.Fatalf("expected no store writes, got %v", repo.ops)
	}
}
