package payments

import (
	"time"

	"github.com/JonasWeidner/ShopFox/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the payment services. All writes
// are single atomic statements; correctness under concurrent webhook
// deliveries is delegated to the store's upsert-on-conflict semantics, not
// to in-process locking.
type Repository interface {
	UpsertProduct(product *models.Product) error
	DeleteProduct(id string) error
	UpsertProductItem(item *models.ProductItem) error
	DeleteProductItem(id string) error
	ListProductsWithItems() ([]models.Product, error)
	UpsertUserPurchase(purchase *models.UserPurchase) error
	ListPurchasesByUser(userID string) ([]models.UserPurchase, error)
	CreateWebhookEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertProduct(product *models.Product) error {
	// Conflict policy is overwrite, not merge: catalog state mirrors the
	// provider, and the provider payload is authoritative.
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"custom_id",
			"name",
			"description",
			"icon",
			"updated_at",
		}),
	}).Create(product).Error; err != nil {
		return err
	}

	return r.db.Where("id = ?", product.ID).First(product).Error
}

func (r *gormRepository) DeleteProduct(id string) error {
	// Not-found is not an error; deletes are idempotent. Owned product items
	// go with the product.
	if err := r.db.Where("product_id = ?", id).Delete(&models.ProductItem{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.Product{}).Error
}

func (r *gormRepository) UpsertProductItem(item *models.ProductItem) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id",
			"custom_id",
			"name",
			"description",
			"price",
			"currency",
			"recurring_interval",
			"popular",
			"features",
			"updated_at",
		}),
	}).Create(item).Error; err != nil {
		return err
	}

	return r.db.Where("id = ?", item.ID).First(item).Error
}

func (r *gormRepository) DeleteProductItem(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.ProductItem{}).Error
}

func (r *gormRepository) ListProductsWithItems() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Items").Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *gormRepository) UpsertUserPurchase(purchase *models.UserPurchase) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "product_item_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"stripe_product_id",
			"stripe_payment_intent_id",
			"stripe_session_id",
			"stripe_customer_id",
			"amount_paid",
			"currency",
			"payment_status",
			"purchased_at",
			"updated_at",
		}),
	}).Create(purchase).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("user_id = ? AND product_item_id = ?", purchase.UserID, purchase.ProductItemID).
		First(purchase).Error
}

func (r *gormRepository) ListPurchasesByUser(userID string) ([]models.UserPurchase, error) {
	var purchases []models.UserPurchase
	err := r.db.Where("user_id = ?", userID).Order("purchased_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.PaymentWebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.PaymentWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
