package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/307second/storefront-gateway/pkg/config"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := New(config.BackendConfig{Host: server.URL, BasePath: "/api/v1"}, nil)
	return client, server
}

func TestListProducts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/products" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Product{
			{ID: 1, Name: "Jaket Denim", Price: 570000, Category: "jackets", Condition: "Good"},
			{ID: 2, Name: "Kaos Band Vintage", Price: 375000, Category: "shirts", Condition: "Excellent"},
		})
	}))

	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Jaket Denim" {
		t.Fatalf("unexpected first product %q", products[0].Name)
	}
}

func TestListProductsNonSuccessIsFetchError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))

	_, err := client.ListProducts(context.Background())
	if err == nil {
		t.Fatal("expected error on 500")
	}
	if !pkgerrors.IsFetch(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestNetworkFailureIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := New(config.BackendConfig{Host: server.URL, BasePath: "/api/v1"}, nil)
	server.Close()

	_, err := client.ListProducts(context.Background())
	if !pkgerrors.IsFetch(err) {
		t.Fatalf("expected fetch error for refused connection, got %v", err)
	}
}

func TestListCartItemsScopesBySession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sessionId"); got != "session_1_abc" {
			t.Fatalf("expected sessionId query param, got %q", got)
		}
		json.NewEncoder(w).Encode([]CartItem{
			{ID: 10, ProductID: 1, Quantity: 2, SessionID: "session_1_abc"},
		})
	}))

	items, err := client.ListCartItems(context.Background(), "session_1_abc")
	if err != nil {
		t.Fatalf("list cart: %v", err)
	}
	if len(items) != 1 || items[0].ID != 10 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestAddCartItemPostsSessionAndQuantity(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/cart" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload addCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload.ProductID != 7 || payload.Quantity != 3 || payload.SessionID != "session_1_abc" {
			t.Fatalf("unexpected payload %+v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CartItem{ID: 42, ProductID: 7, Quantity: 3})
	}))

	item, err := client.AddCartItem(context.Background(), 7, 3, "session_1_abc")
	if err != nil {
		t.Fatalf("add cart item: %v", err)
	}
	if item.ID != 42 {
		t.Fatalf("expected row id 42, got %d", item.ID)
	}
}

func TestUpdateCartItemRejectsNonPositiveQuantity(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request should be issued for invalid quantity")
	}))

	_, err := client.UpdateCartItem(context.Background(), 42, 0)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveCartItem(t *testing.T) {
	var called bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/cart/42" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.RemoveCartItem(context.Background(), 42); err != nil {
		t.Fatalf("remove cart item: %v", err)
	}
	if !called {
		t.Fatal("delete request never reached the backend")
	}
}
