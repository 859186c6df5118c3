package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/JonasWeidner/ShopFox/app/models"
	"gorm.io/gorm"
)

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

// Service journals inbound webhook events for deduplication and out-of-band
// recovery, and exposes the handlers built on the shared repository.
type Service struct {
	repo      Repository
	Catalog   *CatalogService
	Purchases *PurchaseService
}

// NewService creates a payment service from injected dependencies.
func NewService(repo Repository, provider ProductRetriever) *Service {
	return &Service{
		repo:      repo,
		Catalog:   NewCatalogService(repo, provider),
		Purchases: NewPurchaseService(repo),
	}
}

// NewServiceFromDB creates a payment service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, provider ProductRetriever) *Service {
	return NewService(NewRepository(db), provider)
}

// Dispatcher returns an event dispatcher over this service's handlers.
func (s *Service) Dispatcher() *Dispatcher {
	return NewDispatcher(s.Catalog, s.Purchases)
}

// ListCatalog returns all synced products with their price items.
func (s *Service) ListCatalog(ctx context.Context) ([]models.Product, error) {
	_ = ctx
	return s.repo.ListProductsWithItems()
}

// RecordWebhookEvent persists webhook payloads idempotently. Returns whether
// this delivery created the row (false means the event id was seen before).
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.PaymentWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.PaymentWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}
