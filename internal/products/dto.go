package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/leafline/leafline-backend/pkg/db/models"
)

// ProductDTO is the vendor product payload served to the dashboard and bound
// into smart_product_grid components.
type ProductDTO struct {
	ID                  uuid.UUID       `json:"id"`
	SKU                 string          `json:"sku"`
	Title               string          `json:"title"`
	Subtitle            *string         `json:"subtitle,omitempty"`
	Category            string          `json:"category"`
	Strain              *string         `json:"strain,omitempty"`
	Classification      *string         `json:"classification,omitempty"`
	Unit                string          `json:"unit"`
	PriceCents          int             `json:"price_cents"`
	Price               decimal.Decimal `json:"price"`
	CompareAtPriceCents *int            `json:"compare_at_price_cents,omitempty"`
	THCPercent          *float64        `json:"thc_percent,omitempty"`
	CBDPercent          *float64        `json:"cbd_percent,omitempty"`
	ImageURL            *string         `json:"image_url,omitempty"`
	IsActive            bool            `json:"is_active"`
	IsFeatured          bool            `json:"is_featured"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CategorySummary is one category with its active listing count.
type CategorySummary struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriceFromCents converts an integer cent amount to a decimal dollar price.
func PriceFromCents(cents int) decimal.Decimal {
	return decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100))
}

// NewProductDTO maps a persisted product row.
func NewProductDTO(m *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                  m.ID,
		SKU:                 m.SKU,
		Title:               m.Title,
		Subtitle:            m.Subtitle,
		Category:            string(m.Category),
		Strain:              m.Strain,
		Unit:                string(m.Unit),
		PriceCents:          m.PriceCents,
		Price:               PriceFromCents(m.PriceCents),
		CompareAtPriceCents: m.CompareAtPriceCents,
		THCPercent:          m.THCPercent,
		CBDPercent:          m.CBDPercent,
		ImageURL:            m.ImageURL,
		IsActive:            m.IsActive,
		IsFeatured:          m.IsFeatured,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.Classification != nil {
		classification := string(*m.Classification)
		dto.Classification = &classification
	}
	return dto
}
