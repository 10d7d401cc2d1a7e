package controllers

import (
	"net/http"

	"github.com/307second/storefront-gateway/api/responses"
	"github.com/307second/storefront-gateway/api/validators"
	"github.com/307second/storefront-gateway/internal/catalog"
	"github.com/307second/storefront-gateway/internal/prefs"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
	"github.com/307second/storefront-gateway/pkg/logger"
)

type viewResponse struct {
	ViewMode prefs.ViewMode  `json:"viewMode"`
	SortKey  catalog.SortKey `json:"sortKey"`
}

// ViewGet returns the current view mode and sort key.
func ViewGet(state *prefs.State, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}

		responses.WriteSuccess(w, viewResponse{
			ViewMode: state.ViewMode(),
			SortKey:  state.SortKey(),
		})
	}
}

type viewUpdateRequest struct {
	ViewMode string `json:"viewMode,omitempty"`
	SortKey  string `json:"sortKey,omitempty"`
}

// ViewPut updates the view mode and/or sort key. Fields left empty keep
// their current value.
func ViewPut(state *prefs.State, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}

		var payload viewUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.ViewMode != "" {
			if err := state.SetViewMode(payload.ViewMode); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if payload.SortKey != "" {
			if err := state.SetSortKey(payload.SortKey); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, viewResponse{
			ViewMode: state.ViewMode(),
			SortKey:  state.SortKey(),
		})
	}
}
