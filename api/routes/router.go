package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/307second/storefront-gateway/api/controllers"
	"github.com/307second/storefront-gateway/api/middleware"
	"github.com/307second/storefront-gateway/internal/prefs"
	"github.com/307second/storefront-gateway/pkg/config"
	"github.com/307second/storefront-gateway/pkg/logger"
	"github.com/307second/storefront-gateway/pkg/metrics"
)

// Deps carries everything the HTTP surface is built from.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Catalog     controllers.CatalogService
	ProductCRUD controllers.ProductAdminService
	Cart        controllers.CartService
	Prefs       *prefs.State
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	r.Get("/healthz", controllers.Healthz(deps.Config))

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/storefront", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Catalog, deps.Logger))
		r.Get("/facets", controllers.CatalogFacets(deps.Catalog, deps.Logger))
		r.Post("/catalog/reload", controllers.CatalogReload(deps.Catalog, deps.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, deps.Logger))
			r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Logger))
			r.Put("/items/{productId}", controllers.CartUpdateItem(deps.Cart, deps.Logger))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, deps.Logger))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(deps.Prefs, deps.Logger))
			r.Post("/{productId}/toggle", controllers.FavoriteToggle(deps.Prefs, deps.Logger))
		})

		r.Route("/view", func(r chi.Router) {
			r.Get("/", controllers.ViewGet(deps.Prefs, deps.Logger))
			r.Put("/", controllers.ViewPut(deps.Prefs, deps.Logger))
		})

		r.Route("/admin/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(deps.ProductCRUD, deps.Logger))
			r.Get("/{productId}", controllers.AdminGetProduct(deps.ProductCRUD, deps.Logger))
			r.Put("/{productId}", controllers.AdminUpdateProduct(deps.ProductCRUD, deps.Logger))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.ProductCRUD, deps.Logger))
		})
	})

	return r
}
