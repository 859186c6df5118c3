package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonasWeidner/ShopFox/app/models"
	"github.com/stripe/stripe-go/v72"
)

var errStore = errors.New("store unavailable")

// fakeRepo is an in-memory Repository that mimics the store's
// upsert-on-conflict semantics and records the order of writes.
type fakeRepo struct {
	products  map[string]models.Product
	items     map[string]models.ProductItem
	purchases map[string]models.UserPurchase
	events    map[string]models.PaymentWebhookEvent

	ops []string

	productErr  error
	itemErr     error
	purchaseErr error

	nextEventID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:  make(map[string]models.Product),
		items:     make(map[string]models.ProductItem),
		purchases: make(map[string]models.UserPurchase),
		events:    make(map[string]models.PaymentWebhookEvent),
	}
}

func (r *fakeRepo) UpsertProduct(product *models.Product) error {
	if r.productErr != nil {
		return r.productErr
	}
	r.ops = append(r.ops, "product:"+product.ID)
	r.products[product.ID] = *product
	return nil
}

func (r *fakeRepo) DeleteProduct(id string) error {
	r.ops = append(r.ops, "delete-product:"+id)
	for itemID, item := range r.items {
		if item.ProductID == id {
			delete(r.items, itemID)
		}
	}
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) UpsertProductItem(item *models.ProductItem) error {
	if r.itemErr != nil {
		return r.itemErr
	}
	r.ops = append(r.ops, "item:"+item.ID)
	r.items[item.ID] = *item
	return nil
}

func (r *fakeRepo) DeleteProductItem(id string) error {
	r.ops = append(r.ops, "delete-item:"+id)
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) ListProductsWithItems() ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		for _, item := range r.items {
			if item.ProductID == p.ID {
				p.Items = append(p.Items, item)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func purchaseKey(userID, itemID string) string {
	return userID + "|" + itemID
}

func (r *fakeRepo) UpsertUserPurchase(purchase *models.UserPurchase) error {
	if r.purchaseErr != nil {
		return r.purchaseErr
	}
	key := purchaseKey(purchase.UserID, purchase.ProductItemID)
	r.ops = append(r.ops, "purchase:"+key)
	if existing, ok := r.purchases[key]; ok {
		purchase.ID = existing.ID
	} else {
		purchase.ID = uint(len(r.purchases) + 1)
	}
	r.purchases[key] = *purchase
	return nil
}

func (r *fakeRepo) ListPurchasesByUser(userID string) ([]models.UserPurchase, error) {
	var out []models.UserPurchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateWebhookEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	key := event.Provider + "|" + event.ProviderEventID
	if stored, ok := r.events[key]; ok {
		return false, &stored, nil
	}
	r.nextEventID++
	event.ID = r.nextEventID
	r.events[key] = *event
	stored := *event
	return true, &stored, nil
}

func (r *fakeRepo) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	for key, event := range r.events {
		if event.ID == id {
			event.ProcessedAt = &now
			event.ProcessingError = processingError
			r.events[key] = event
			return nil
		}
	}
	return fmt.Errorf("webhook event %d not found", id)
}

// fakeProductRetriever serves canned provider products and records lookups.
type fakeProductRetriever struct {
	products map[string]*stripe.Product
	err      error
	calls    []string
}

func (f *fakeProductRetriever) RetrieveProduct(ctx context.Context, id string) (*stripe.Product, error) {
	_ = ctx
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	product, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("no such product: %s", id)
	}
	return product, nil
}
