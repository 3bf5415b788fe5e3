package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	product "github.com/leafline/leafline-backend/internal/products"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/pagination"
)

type stubProductService struct {
	list       []product.ProductDTO
	next       string
	lastParams pagination.Params
	dto        *product.ProductDTO
	summaries  []product.CategorySummary
	total      int
	err        error
}

func (s *stubProductService) ListProducts(_ context.Context, _ uuid.UUID, params pagination.Params) ([]product.ProductDTO, string, error) {
	s.lastParams = params
	return s.list, s.next, s.err
}

func (s *stubProductService) GetProduct(context.Context, uuid.UUID, uuid.UUID) (*product.ProductDTO, error) {
	return s.dto, s.err
}

func (s *stubProductService) CategorySummaries(context.Context, uuid.UUID) ([]product.CategorySummary, int, error) {
	return s.summaries, s.total, s.err
}

func TestVendorListProducts(t *testing.T) {
	logg := testLogger()
	vendorID := uuid.New()
	catalog := []product.ProductDTO{
		{ID: uuid.New(), Title: "One", Price: decimal.NewFromInt(12)},
		{ID: uuid.New(), Title: "Two", Price: decimal.NewFromInt(30)},
		{ID: uuid.New(), Title: "Three", Price: decimal.NewFromInt(9)},
	}

	t.Run("serves the catalog page", func(t *testing.T) {
		stub := &stubProductService{list: catalog, next: "cursor-token"}
		req := vendorRequest(http.MethodGet, "/api/v1/vendor/products", vendorID, "")
		rec := httptest.NewRecorder()
		VendorListProducts(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var payload struct {
			Data struct {
				Items      []product.ProductDTO `json:"items"`
				NextCursor string               `json:"next_cursor"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(payload.Data.Items) != 3 {
			t.Fatalf("expected 3 products, got %d", len(payload.Data.Items))
		}
		if payload.Data.NextCursor != "cursor-token" {
			t.Fatalf("next cursor not surfaced: %q", payload.Data.NextCursor)
		}
	})

	t.Run("limit and cursor forwarded", func(t *testing.T) {
		stub := &stubProductService{list: catalog}
		req := vendorRequest(http.MethodGet, "/api/v1/vendor/products?limit=2&cursor=abc", vendorID, "")
		rec := httptest.NewRecorder()
		VendorListProducts(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastParams.Limit != 2 || stub.lastParams.Cursor != "abc" {
			t.Fatalf("params not forwarded: %+v", stub.lastParams)
		}
	})

	t.Run("rejects non numeric limit", func(t *testing.T) {
		stub := &stubProductService{list: catalog}
		req := vendorRequest(http.MethodGet, "/api/v1/vendor/products?limit=lots", vendorID, "")
		rec := httptest.NewRecorder()
		VendorListProducts(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing vendor context", func(t *testing.T) {
		stub := &stubProductService{list: catalog}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/products", nil)
		rec := httptest.NewRecorder()
		VendorListProducts(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestVendorGetProduct(t *testing.T) {
	logg := testLogger()
	vendorID := uuid.New()
	productID := uuid.New()

	t.Run("found", func(t *testing.T) {
		stub := &stubProductService{dto: &product.ProductDTO{ID: productID, Title: "Found"}}
		req := vendorRequest(http.MethodGet, "/api/v1/vendor/products/"+productID.String(), vendorID, "")
		req = withRouteParam(req, "productId", productID.String())
		rec := httptest.NewRecorder()
		VendorGetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := vendorRequest(http.MethodGet, "/api/v1/vendor/products/"+productID.String(), vendorID, "")
		req = withRouteParam(req, "productId", productID.String())
		rec := httptest.NewRecorder()
		VendorGetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		stub := &stubProductService{}
		req := vendorRequest(http.MethodGet, "/api/v1/vendor/products/nope", vendorID, "")
		req = withRouteParam(req, "productId", "nope")
		rec := httptest.NewRecorder()
		VendorGetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVendorProductSummary(t *testing.T) {
	logg := testLogger()
	vendorID := uuid.New()
	stub := &stubProductService{
		summaries: []product.CategorySummary{{Category: "flower", Count: 4}},
		total:     4,
	}

	req := vendorRequest(http.MethodGet, "/api/v1/vendor/products/summary", vendorID, "")
	rec := httptest.NewRecorder()
	VendorProductSummary(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Data struct {
			Total      int                       `json:"total"`
			Categories []product.CategorySummary `json:"categories"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.Total != 4 || len(payload.Data.Categories) != 1 {
		t.Fatalf("unexpected payload: %+v", payload.Data)
	}
}
