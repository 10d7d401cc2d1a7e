package controllers

import (
	"net/http"

	"github.com/307second/storefront-gateway/api/responses"
	"github.com/307second/storefront-gateway/pkg/config"
)

func Healthz(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}
