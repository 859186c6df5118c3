package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/JonasWeidner/ShopFox/app/models"
	"github.com/stripe/stripe-go/v72"
)

// ProductRetriever fetches a full product from the payment provider. It is
// injected so the catalog service never reaches for a global client.
type ProductRetriever interface {
	RetrieveProduct(ctx context.Context, id string) (*stripe.Product, error)
}

// CatalogService mirrors provider catalog state (products and prices) into
// the local store in response to webhook events.
type CatalogService struct {
	repo     Repository
	provider ProductRetriever
}

// NewCatalogService creates a catalog synchronizer from injected dependencies.
func NewCatalogService(repo Repository, provider ProductRetriever) *CatalogService {
	return &CatalogService{repo: repo, provider: provider}
}

// SyncProduct upserts a product row keyed by the provider id, overwriting
// all fields.
func (s *CatalogService) SyncProduct(ctx context.Context, product *stripe.Product) (*models.Product, error) {
	_ = ctx
	if product == nil || strings.TrimSpace(product.ID) == "" {
		return nil, errors.New("product id is required")
	}

	row := &models.Product{
		ID:          product.ID,
		CustomID:    product.Metadata["custom_id"],
		Name:        product.Name,
		Description: product.Description,
	}
	if len(product.Images) > 0 {
		row.Icon = product.Images[0]
	}

	if err := s.repo.UpsertProduct(row); err != nil {
		return nil, err
	}
	return row, nil
}

// SyncPrice upserts a price row keyed by the provider id. A webhook price
// payload references its product by id only; the full product is fetched and
// synced first so the item never points at a missing product row.
func (s *CatalogService) SyncPrice(ctx context.Context, price *stripe.Price) (*models.ProductItem, error) {
	if price == nil || strings.TrimSpace(price.ID) == "" {
		return nil, errors.New("price id is required")
	}
	if price.Product == nil || strings.TrimSpace(price.Product.ID) == "" {
		return nil, errors.New("price is missing its product reference")
	}

	// An unexpanded product reference carries only the id.
	if price.Product.Name == "" {
		product, err := s.provider.RetrieveProduct(ctx, price.Product.ID)
		if err != nil {
			return nil, err
		}
		if _, err := s.SyncProduct(ctx, product); err != nil {
			return nil, err
		}
	}

	name := price.Nickname
	if name == "" {
		name = "Price for " + price.ID
	}

	row := &models.ProductItem{
		ID:          price.ID,
		ProductID:   price.Product.ID,
		CustomID:    price.Metadata["custom_id"],
		Name:        name,
		Description: price.Metadata["description"],
		Price:       price.UnitAmount,
		Currency:    string(price.Currency),
		Popular:     price.Metadata["popular"] == "true",
		Features:    parseFeatures(price.ID, price.Metadata["features"]),
	}
	if price.Recurring != nil {
		row.RecurringInterval = string(price.Recurring.Interval)
	}

	if err := s.repo.UpsertProductItem(row); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteProduct removes a product (and its items) by provider id. Deleting a
// product that was never synced is a no-op.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	_ = ctx
	if strings.TrimSpace(id) == "" {
		return errors.New("product id is required")
	}
	return s.repo.DeleteProduct(id)
}

// DeletePrice removes a price by provider id. Idempotent like DeleteProduct.
func (s *CatalogService) DeletePrice(ctx context.Context, id string) error {
	_ = ctx
	if strings.TrimSpace(id) == "" {
		return errors.New("price id is required")
	}
	return s.repo.DeleteProductItem(id)
}

// parseFeatures decodes the JSON-encoded feature array the provider carries
// as a metadata string. Malformed metadata degrades to an empty list; the
// catalog row is still synced.
func parseFeatures(priceID, raw string) models.FeatureList {
	if strings.TrimSpace(raw) == "" {
		return models.FeatureList{}
	}
	var features models.FeatureList
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		log.Printf("[payments] malformed features metadata on price %s, defaulting to empty list: %v", priceID, err)
		return models.FeatureList{}
	}
	return features
}
