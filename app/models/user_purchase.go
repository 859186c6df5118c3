package models

import "time"

// Payment status values for UserPurchase. Only "completed" is written today;
// the remaining values are reserved for status-correcting provider events.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// UserPurchase records one user's completed payment for one ProductItem.
// The unique index on (user_id, product_item_id) is the idempotency anchor:
// replayed checkout events update the row in place instead of duplicating it.
// The user id is the identity provider's subject; there is no local user row
// behind it.
type UserPurchase struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	UserID                string    `gorm:"type:varchar(191);not null;index:ux_user_purchases_user_item,unique,priority:1" json:"user_id"`
	ProductItemID         string    `gorm:"type:varchar(191);not null;index:ux_user_purchases_user_item,unique,priority:2" json:"product_item_id"`
	StripeProductID       string    `gorm:"type:varchar(191);default:'';index" json:"stripe_product_id"`
	StripePaymentIntentID string    `gorm:"type:varchar(191);default:''" json:"stripe_payment_intent_id"`
	StripeSessionID       string    `gorm:"type:varchar(191);default:'';index" json:"stripe_session_id"`
	StripeCustomerID      string    `gorm:"type:varchar(191);default:''" json:"stripe_customer_id"`
	AmountPaid            int64     `gorm:"not null;default:0" json:"amount_paid"`
	Currency              string    `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	PaymentStatus         string    `gorm:"type:varchar(32);not null;default:'completed';index" json:"payment_status"`
	PurchasedAt           time.Time `gorm:"not null" json:"purchased_at"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
