package controllers

import (
	"net/http"

	"github.com/leafline/leafline-backend/api/responses"
	"github.com/leafline/leafline-backend/api/validators"
	product "github.com/leafline/leafline-backend/internal/products"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
	"github.com/leafline/leafline-backend/pkg/pagination"
)

// VendorListProducts serves one cursor page of the active catalog for the
// vendor dashboard.
func VendorListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}

		list, next, err := svc.ListProducts(r.Context(), vendorID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{"items": list}
		if next != "" {
			payload["next_cursor"] = next
		}
		responses.WriteSuccess(w, payload)
	}
}

// VendorGetProduct serves one active product.
func VendorGetProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), vendorID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// VendorProductSummary serves the per-category breakdown shown next to the
// storefront's category navigation.
func VendorProductSummary(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		vendorID, err := vendorIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summaries, total, err := svc.CategorySummaries(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"total":      total,
			"categories": summaries,
		})
	}
}
