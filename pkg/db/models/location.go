package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/types"
)

// Location is a physical vendor site surfaced by smart_location_map components.
type Location struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID  uuid.UUID     `gorm:"column:vendor_id;type:uuid;not null;index"`
	Name      string        `gorm:"column:name;not null"`
	Address   types.Address `gorm:"column:address;type:address_t;not null"`
	Phone     *string       `gorm:"column:phone"`
	IsActive  bool          `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
