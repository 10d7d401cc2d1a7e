package controllers

import (
	"net/http"

	"github.com/307second/storefront-gateway/api/responses"
	"github.com/307second/storefront-gateway/internal/prefs"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
	"github.com/307second/storefront-gateway/pkg/logger"
)

type favoriteToggleResponse struct {
	ProductID int   `json:"productId"`
	Favorite  bool  `json:"favorite"`
	Favorites []int `json:"favorites"`
}

// FavoriteToggle flips a product's favorite state and returns the result.
func FavoriteToggle(state *prefs.State, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		favorite := state.ToggleFavorite(productID)

		responses.WriteSuccess(w, favoriteToggleResponse{
			ProductID: productID,
			Favorite:  favorite,
			Favorites: state.Favorites(),
		})
	}
}

// FavoritesList returns the favorited product ids.
func FavoritesList(state *prefs.State, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string][]int{"favorites": state.Favorites()})
	}
}
