package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/pkg/db/models"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/pagination"
)

type repository interface {
	ListActivePage(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Product, error)
	FindActive(ctx context.Context, vendorID, productID uuid.UUID) (*models.Product, error)
	CategoryBreakdown(ctx context.Context, vendorID uuid.UUID) ([]CategorySummary, error)
}

// Service exposes the vendor catalog reads the storefront consumes.
type Service interface {
	ListProducts(ctx context.Context, vendorID uuid.UUID, params pagination.Params) ([]ProductDTO, string, error)
	GetProduct(ctx context.Context, vendorID, productID uuid.UUID) (*ProductDTO, error)
	CategorySummaries(ctx context.Context, vendorID uuid.UUID) ([]CategorySummary, int, error)
}

type service struct {
	repo repository
}

// NewService wires the catalog read service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts serves one cursor page of the active catalog. The returned
// cursor is empty on the last page.
func (s *service) ListProducts(ctx context.Context, vendorID uuid.UUID, params pagination.Params) ([]ProductDTO, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListActivePage(ctx, vendorID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	out := make([]ProductDTO, len(rows))
	for i := range rows {
		out[i] = *NewProductDTO(&rows[i])
	}
	return out, next, nil
}

func (s *service) GetProduct(ctx context.Context, vendorID, productID uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindActive(ctx, vendorID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(row), nil
}

// CategorySummaries returns per-category counts alongside the active total,
// used by the dashboard and the smart_category_nav binding.
func (s *service) CategorySummaries(ctx context.Context, vendorID uuid.UUID) ([]CategorySummary, int, error) {
	summaries, err := s.repo.CategoryBreakdown(ctx, vendorID)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count categories")
	}
	total := 0
	for _, summary := range summaries {
		total += summary.Count
	}
	return summaries, total, nil
}
