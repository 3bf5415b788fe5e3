package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/enums"
)

// StorefrontSection is one ordered container of components on a vendor page.
// section_order -1 is reserved for the header, 999 for the footer.
type StorefrontSection struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID     uuid.UUID      `gorm:"column:vendor_id;type:uuid;not null;index"`
	SectionKey   string         `gorm:"column:section_key;not null"`
	SectionOrder int            `gorm:"column:section_order;not null"`
	PageType     enums.PageType `gorm:"column:page_type;type:page_type;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
