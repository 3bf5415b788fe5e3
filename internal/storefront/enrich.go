package storefront

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/db/models"
	"github.com/leafline/leafline-backend/pkg/logger"
)

type productAggregates interface {
	ActiveCategoryCounts(ctx context.Context, vendorID uuid.UUID) (total int, categories []string, err error)
}

type locationCounter interface {
	CountActive(ctx context.Context, vendorID uuid.UUID) (int, error)
}

type vendorReader interface {
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

// Enricher merges live vendor aggregates onto a base vendor record. The
// result is a transient view recomputed per generation request.
type Enricher struct {
	products  productAggregates
	locations locationCounter
	vendors   vendorReader
	logger    *logger.Logger
}

// NewEnricher wires the three read sources.
func NewEnricher(products productAggregates, locations locationCounter, vendors vendorReader, logg *logger.Logger) *Enricher {
	return &Enricher{products: products, locations: locations, vendors: vendors, logger: logg}
}

// Enrich issues three independent reads and merges the aggregates onto base.
// Any read failure degrades to zero aggregates instead of propagating; the
// failure is logged and the caller proceeds with the base record.
func (e *Enricher) Enrich(ctx context.Context, vendorID uuid.UUID, base VendorData) VendorData {
	out := base

	vendor, err := e.vendors.FindVendor(ctx, vendorID)
	if err != nil {
		e.warn(ctx, vendorID, "vendor lookup failed during enrichment", err)
		return degraded(base)
	}
	mergeVendorRow(&out, vendor)

	total, categories, err := e.products.ActiveCategoryCounts(ctx, vendorID)
	if err != nil {
		e.warn(ctx, vendorID, "product aggregation failed during enrichment", err)
		return degraded(out)
	}
	sort.Strings(categories)
	out.ProductCount = total
	out.ProductCategories = categories
	out.HasProducts = total > 0

	locationCount, err := e.locations.CountActive(ctx, vendorID)
	if err != nil {
		e.warn(ctx, vendorID, "location count failed during enrichment", err)
		return degraded(out)
	}
	out.LocationCount = locationCount

	return out
}

func mergeVendorRow(out *VendorData, vendor *models.Vendor) {
	if vendor == nil {
		return
	}
	if vendor.CompanyName != "" {
		out.StoreName = vendor.CompanyName
	}
	if vendor.Slug != "" {
		out.Slug = vendor.Slug
	}
	if vendor.Tagline != nil && *vendor.Tagline != "" {
		out.StoreTagline = vendor.Tagline
	}
	if vendor.LogoURL != nil && *vendor.LogoURL != "" {
		out.LogoURL = vendor.LogoURL
	}
	if len(vendor.BrandColors) > 0 {
		out.BrandColors = append([]string(nil), vendor.BrandColors...)
	}
	if vendor.Type.IsValid() {
		out.VendorType = vendor.Type
	}
	out.WholesaleEnabled = vendor.WholesaleEnabled
}

func degraded(base VendorData) VendorData {
	base.ProductCount = 0
	base.ProductCategories = nil
	base.HasProducts = false
	base.LocationCount = 0
	return base
}

func (e *Enricher) warn(ctx context.Context, vendorID uuid.UUID, msg string, err error) {
	if e.logger == nil {
		return
	}
	ctx = e.logger.WithVendorID(ctx, vendorID.String())
	ctx = e.logger.WithFields(ctx, map[string]any{"error": err.Error()})
	e.logger.Warn(ctx, msg)
}
