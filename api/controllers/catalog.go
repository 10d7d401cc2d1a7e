package controllers

import (
	"context"
	"math"
	"net/http"

	"github.com/307second/storefront-gateway/api/responses"
	"github.com/307second/storefront-gateway/api/validators"
	"github.com/307second/storefront-gateway/internal/backend"
	"github.com/307second/storefront-gateway/internal/catalog"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
	"github.com/307second/storefront-gateway/pkg/logger"
)

// CatalogService is the slice of the catalog service the HTTP surface
// needs.
type CatalogService interface {
	Products(ctx context.Context) ([]backend.Product, error)
	Reload(ctx context.Context) ([]backend.Product, error)
}

type productListResponse struct {
	Products      []backend.Product `json:"products"`
	Total         int               `json:"total"`
	Sort          catalog.SortKey   `json:"sort"`
	ActiveFilters int               `json:"activeFilters"`
}

// ListProducts runs the filter engine over the current catalog snapshot.
func ListProducts(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sortKey, ok := catalog.ParseSortKey(r.URL.Query().Get("sort"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").
				WithDetails(map[string]any{"field": "sort"}))
			return
		}

		products, err := svc.Products(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		facets := catalog.CollectFacets(products)

		priceMin, err := validators.ParseQueryInt(r, "price_min", 0, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceMax, err := validators.ParseQueryInt(r, "price_max", facets.MaxPrice, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		opts := catalog.FilterOptions{
			Categories: validators.ParseQueryList(r, "categories"),
			Conditions: validators.ParseQueryList(r, "conditions"),
			Brands:     validators.ParseQueryList(r, "brands"),
			Sizes:      validators.ParseQueryList(r, "sizes"),
			Colors:     validators.ParseQueryList(r, "colors"),
			PriceRange: catalog.PriceRange{Low: priceMin, High: priceMax},
		}

		page := catalog.FilterAndSort(products, r.URL.Query().Get("q"), opts, sortKey, nil)

		responses.WriteSuccess(w, productListResponse{
			Products:      page,
			Total:         len(page),
			Sort:          sortKey,
			ActiveFilters: catalog.ActiveFilterCount(opts, facets.MaxPrice),
		})
	}
}

// CatalogFacets aggregates facet values over the full catalog.
func CatalogFacets(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.Products(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalog.CollectFacets(products))
	}
}

// CatalogReload forces a fresh backend fetch, the retry affordance after a
// failed load.
func CatalogReload(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.Reload(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"loaded": len(products)})
	}
}
