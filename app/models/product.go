package models

import "time"

// Product is a catalog grouping owned by the payment provider. Rows are only
// ever written by the catalog synchronizer in response to provider webhook
// events; users never create products directly.
type Product struct {
	ID          string        `gorm:"primaryKey;type:varchar(191)" json:"id"`
	CustomID    string        `gorm:"type:varchar(191);default:'';index" json:"custom_id"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Icon        string        `gorm:"type:varchar(200);default:''" json:"icon"`
	Items       []ProductItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
