package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FeatureList stores the marketing feature bullets of a price as a JSON
// array column.
type FeatureList []string

// Value implements driver.Valuer.
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		f = FeatureList{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = FeatureList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported feature list column type %T", value)
	}
	if len(raw) == 0 {
		*f = FeatureList{}
		return nil
	}
	return json.Unmarshal(raw, f)
}

// ProductItem is a purchasable price point under a Product
// (e.g. "Premium Yearly"). The product row must exist before an item
// referencing it is written.
type ProductItem struct {
	ID                string      `gorm:"primaryKey;type:varchar(191)" json:"id"`
	ProductID         string      `gorm:"type:varchar(191);not null;index" json:"product_id"`
	CustomID          string      `gorm:"type:varchar(191);default:'';index" json:"custom_id"`
	Name              string      `gorm:"type:varchar(200);not null" json:"name"`
	Description       string      `gorm:"type:text" json:"description"`
	Price             int64       `gorm:"not null" json:"price"`
	Currency          string      `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	RecurringInterval string      `gorm:"type:varchar(16);default:''" json:"recurring_interval"`
	Popular           bool        `gorm:"default:false" json:"popular"`
	Features          FeatureList `gorm:"type:json" json:"features"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
