package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/307second/storefront-gateway/internal/backend"
	"github.com/307second/storefront-gateway/internal/cart"
	"github.com/307second/storefront-gateway/internal/prefs"
	"github.com/307second/storefront-gateway/pkg/config"
	"github.com/307second/storefront-gateway/pkg/metrics"
)

type stubCatalogService struct {
	products []backend.Product
}

func (s stubCatalogService) Products(ctx context.Context) ([]backend.Product, error) {
	return s.products, nil
}

func (s stubCatalogService) Reload(ctx context.Context) ([]backend.Product, error) {
	return s.products, nil
}

type stubProductCRUD struct{}

func (stubProductCRUD) GetProduct(ctx context.Context, id int) (backend.Product, error) {
	return backend.Product{ID: id}, nil
}

func (stubProductCRUD) CreateProduct(ctx context.Context, input backend.ProductInput) (backend.Product, error) {
	return backend.Product{ID: 1}, nil
}

func (stubProductCRUD) UpdateProduct(ctx context.Context, id int, input backend.ProductInput) (backend.Product, error) {
	return backend.Product{ID: id}, nil
}

func (stubProductCRUD) DeleteProduct(ctx context.Context, id int) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) Add(ctx context.Context, productID, quantity int) error    { return nil }
func (stubCartService) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	return nil
}
func (stubCartService) Remove(ctx context.Context, productID int) error { return nil }
func (stubCartService) Refresh(ctx context.Context) error               { return nil }
func (stubCartService) Items() []cart.Line                              { return nil }
func (stubCartService) TotalQuantity() int                              { return 0 }
func (stubCartService) Subtotal() int                                   { return 0 }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	registry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config: &config.Config{App: config.AppConfig{Env: "test"}},
		Catalog: stubCatalogService{products: []backend.Product{
			{ID: 1, Name: "Wool Coat", Price: 450000, Category: "jackets", Condition: "good"},
		}},
		ProductCRUD: stubProductCRUD{},
		Cart:        stubCartService{},
		Prefs:       prefs.NewState(),
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Gatherer:    registry,
	})
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Storefront-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}

func TestRouterProducts(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 1 {
		t.Fatalf("expected 1 product got %d", envelope.Data.Total)
	}
}

func TestRouterMetricsExposed(t *testing.T) {
	router := newTestRouter(t)

	// Generate one observation first.
	seed := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(httptest.NewRecorder(), seed)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("expected metrics output")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
