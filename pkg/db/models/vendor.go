package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

// Vendor represents the canonical tenant model.
type Vendor struct {
	ID                   uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type                 enums.VendorType `gorm:"column:type;type:vendor_type;not null"`
	CompanyName          string           `gorm:"column:company_name;not null"`
	Slug                 string           `gorm:"column:slug;not null;uniqueIndex"`
	Tagline              *string          `gorm:"column:tagline"`
	Description          *string          `gorm:"column:description"`
	Phone                *string          `gorm:"column:phone"`
	Email                *string          `gorm:"column:email"`
	Social               *types.Social    `gorm:"column:social;type:social_t"`
	BannerURL            *string          `gorm:"column:banner_url"`
	LogoURL              *string          `gorm:"column:logo_url"`
	BrandColors          pq.StringArray   `gorm:"column:brand_colors;type:text[]"`
	WholesaleEnabled     bool             `gorm:"column:wholesale_enabled;not null;default:false"`
	StorefrontGenerated  bool             `gorm:"column:storefront_generated;not null;default:false"`
	StorefrontTemplateID *string          `gorm:"column:storefront_template_id"`
	LastActiveAt         *time.Time       `gorm:"column:last_active_at"`
	CreatedAt            time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
