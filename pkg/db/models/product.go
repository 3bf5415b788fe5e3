package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/enums"
)

// Product represents the canonical vendor listing.
type Product struct {
	ID                  uuid.UUID                    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID            uuid.UUID                    `gorm:"column:vendor_id;type:uuid;not null;index"`
	SKU                 string                       `gorm:"column:sku;not null"`
	Title               string                       `gorm:"column:title;not null"`
	Subtitle            *string                      `gorm:"column:subtitle"`
	Category            enums.ProductCategory        `gorm:"column:category;type:category;not null"`
	Strain              *string                      `gorm:"column:strain"`
	Classification      *enums.ProductClassification `gorm:"column:classification;type:classification"`
	Unit                enums.ProductUnit            `gorm:"column:unit;type:unit;not null"`
	PriceCents          int                          `gorm:"column:price_cents;not null"`
	CompareAtPriceCents *int                         `gorm:"column:compare_at_price_cents"`
	THCPercent          *float64                     `gorm:"column:thc_percent;type:numeric(5,2)"`
	CBDPercent          *float64                     `gorm:"column:cbd_percent;type:numeric(5,2)"`
	ImageURL            *string                      `gorm:"column:image_url"`
	IsActive            bool                         `gorm:"column:is_active;not null;default:true"`
	IsFeatured          bool                         `gorm:"column:is_featured;not null;default:false"`
	CreatedAt           time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
}
