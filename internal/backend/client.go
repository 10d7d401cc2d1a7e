package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/307second/storefront-gateway/pkg/config"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
	"github.com/307second/storefront-gateway/pkg/logger"
)

// Client issues REST calls against the remote catalog/cart service.
// Failures surface as a single FETCH_ERROR kind; error bodies are never
// parsed for structured detail. No call is retried here.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
}

// New builds a client from backend configuration. A zero timeout means
// requests never time out client-side.
func New(cfg config.BackendConfig, logg *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL(),
		logg:       logg,
	}
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single catalog entry.
func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product)
	return product, err
}

// CreateProduct inserts a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPost, "/products", input, &product)
	return product, err
}

// UpdateProduct applies a partial update to a catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, id int, input ProductInput) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), input, &product)
	return product, err
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// ListCartItems fetches all cart rows scoped to the session identifier.
func (c *Client) ListCartItems(ctx context.Context, sessionID string) ([]CartItem, error) {
	path := "/cart?sessionId=" + url.QueryEscape(sessionID)
	var items []CartItem
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type addCartItemRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	SessionID string `json:"sessionId"`
}

// AddCartItem always issues a create call; dedup against existing rows is
// the caller's concern.
func (c *Client) AddCartItem(ctx context.Context, productID, quantity int, sessionID string) (CartItem, error) {
	body := addCartItemRequest{ProductID: productID, Quantity: quantity, SessionID: sessionID}
	var item CartItem
	err := c.do(ctx, http.MethodPost, "/cart", body, &item)
	return item, err
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets the quantity on an existing cart row. Quantity must
// be positive; routing zero to removal is the caller's job.
func (c *Client) UpdateCartItem(ctx context.Context, rowID, quantity int) (CartItem, error) {
	if quantity <= 0 {
		return CartItem{}, pkgerrors.New(pkgerrors.CodeValidation, "cart quantity must be positive").
			WithDetails(map[string]any{"quantity": quantity})
	}
	var item CartItem
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", rowID), updateCartItemRequest{Quantity: quantity}, &item)
	return item, err
}

// RemoveCartItem deletes a cart row.
func (c *Client) RemoveCartItem(ctx context.Context, rowID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", rowID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fetchError(ctx, method, path, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return c.fetchError(ctx, method, path, resp.StatusCode, nil)
	}

	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return c.fetchError(ctx, method, path, resp.StatusCode, err)
	}
	return nil
}

func (c *Client) fetchError(ctx context.Context, method, path string, status int, cause error) error {
	details := map[string]any{
		"method": method,
		"path":   path,
	}
	if status != 0 {
		details["status"] = status
	}

	err := pkgerrors.Wrap(pkgerrors.CodeFetch, cause, "backend request failed").WithDetails(details)
	if c.logg != nil {
		c.logg.Error(c.logg.WithFields(ctx, details), "backend.request_failed", err)
	}
	return err
}
