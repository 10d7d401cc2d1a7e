package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/307second/storefront-gateway/internal/backend"
	"github.com/307second/storefront-gateway/internal/cart"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
)

type stubCart struct {
	lines     []cart.Line
	refreshes int
	adds      []int
	updates   map[int]int
	removed   []int
	err       error
}

func (s *stubCart) Add(ctx context.Context, productID, quantity int) error {
	if s.err != nil {
		return s.err
	}
	s.adds = append(s.adds, productID)
	return nil
}

func (s *stubCart) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if s.err != nil {
		return s.err
	}
	if s.updates == nil {
		s.updates = map[int]int{}
	}
	s.updates[productID] = quantity
	return nil
}

func (s *stubCart) Remove(ctx context.Context, productID int) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, productID)
	return nil
}

func (s *stubCart) Refresh(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.refreshes++
	return nil
}

func (s *stubCart) Items() []cart.Line {
	return s.lines
}

func (s *stubCart) TotalQuantity() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

func (s *stubCart) Subtotal() int {
	total := 0
	for _, line := range s.lines {
		total += line.LineTotal()
	}
	return total
}

func withProductID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCartGetRefreshesSnapshot(t *testing.T) {
	svc := &stubCart{lines: []cart.Line{
		{RowID: 10, ProductID: 1, Product: backend.Product{ID: 1, Price: 120000}, Quantity: 2},
	}}
	handler := CartGet(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.refreshes != 1 {
		t.Fatalf("expected one refresh got %d", svc.refreshes)
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalQuantity != 2 || envelope.Data.Subtotal != 240000 {
		t.Fatalf("unexpected snapshot: %+v", envelope.Data)
	}
}

func TestCartAddItemCreated(t *testing.T) {
	svc := &stubCart{}
	handler := CartAddItem(svc, nil)

	body := strings.NewReader(`{"productId": 3, "quantity": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/storefront/cart/items", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if len(svc.adds) != 1 || svc.adds[0] != 3 {
		t.Fatalf("expected add of product 3 got %v", svc.adds)
	}
}

func TestCartAddItemMissingProductID(t *testing.T) {
	handler := CartAddItem(&stubCart{}, nil)

	body := strings.NewReader(`{"quantity": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/storefront/cart/items", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateItem(t *testing.T) {
	svc := &stubCart{}
	handler := CartUpdateItem(svc, nil)

	body := strings.NewReader(`{"quantity": 0}`)
	req := withProductID(httptest.NewRequest(http.MethodPut, "/api/storefront/cart/items/3", body), "3")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if qty, ok := svc.updates[3]; !ok || qty != 0 {
		t.Fatalf("expected quantity 0 update for product 3 got %v", svc.updates)
	}
}

func TestCartUpdateItemBadProductID(t *testing.T) {
	handler := CartUpdateItem(&stubCart{}, nil)

	body := strings.NewReader(`{"quantity": 1}`)
	req := withProductID(httptest.NewRequest(http.MethodPut, "/api/storefront/cart/items/abc", body), "abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartRemoveItem(t *testing.T) {
	svc := &stubCart{}
	handler := CartRemoveItem(svc, nil)

	req := withProductID(httptest.NewRequest(http.MethodDelete, "/api/storefront/cart/items/7", nil), "7")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.removed) != 1 || svc.removed[0] != 7 {
		t.Fatalf("expected removal of product 7 got %v", svc.removed)
	}
}

func TestCartMutationFailureSurfaces(t *testing.T) {
	svc := &stubCart{err: pkgerrors.New(pkgerrors.CodeFetch, "backend unreachable")}
	handler := CartAddItem(svc, nil)

	body := strings.NewReader(`{"productId": 3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/storefront/cart/items", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", resp.Code)
	}
}
