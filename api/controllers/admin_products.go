package controllers

import (
	"context"
	"net/http"

	"github.com/307second/storefront-gateway/api/responses"
	"github.com/307second/storefront-gateway/api/validators"
	"github.com/307second/storefront-gateway/internal/backend"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
	"github.com/307second/storefront-gateway/pkg/logger"
)

// ProductAdminService covers the catalog write path the admin surface
// exercises. Writes invalidate the catalog snapshot behind it.
type ProductAdminService interface {
	GetProduct(ctx context.Context, id int) (backend.Product, error)
	CreateProduct(ctx context.Context, input backend.ProductInput) (backend.Product, error)
	UpdateProduct(ctx context.Context, id int, input backend.ProductInput) (backend.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type productWriteRequest struct {
	Name          string `json:"name" validate:"required"`
	Price         int    `json:"price" validate:"required,min=0"`
	OriginalPrice *int   `json:"originalPrice,omitempty" validate:"omitempty,min=0"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category" validate:"required"`
	Condition     string `json:"condition" validate:"required"`
	Description   string `json:"description,omitempty"`
	Size          string `json:"size,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Color         string `json:"color,omitempty"`
	Material      string `json:"material,omitempty"`
}

func (req productWriteRequest) toInput() backend.ProductInput {
	return backend.ProductInput{
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Category:      req.Category,
		Condition:     req.Condition,
		Description:   req.Description,
		Size:          req.Size,
		Brand:         req.Brand,
		Color:         req.Color,
		Material:      req.Material,
	}
}

func AdminGetProduct(svc ProductAdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func AdminCreateProduct(svc ProductAdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productWriteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminUpdateProduct(svc ProductAdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productWriteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc ProductAdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"deleted": productID})
	}
}
