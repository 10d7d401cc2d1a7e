package cart

import (
	"context"
	"sync"

	"github.com/307second/storefront-gateway/internal/backend"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
	"github.com/307second/storefront-gateway/pkg/logger"
)

// BackendAPI is the slice of the backend client the controller drives.
type BackendAPI interface {
	ListCartItems(ctx context.Context, sessionID string) ([]backend.CartItem, error)
	AddCartItem(ctx context.Context, productID, quantity int, sessionID string) (backend.CartItem, error)
	UpdateCartItem(ctx context.Context, rowID, quantity int) (backend.CartItem, error)
	RemoveCartItem(ctx context.Context, rowID int) error
}

// SessionSource yields the session identifier scoping every cart call.
type SessionSource interface {
	SessionID(ctx context.Context) (string, error)
}

// Controller reconciles local cart state against the backend: every
// mutation runs mutate-then-refetch-then-replace, and mutations are
// serialized through a FIFO so two rapid actions can never interleave
// their sequences. On failure local state is left unchanged, stale but
// consistent, and the error is both logged and returned to the caller.
type Controller struct {
	api      BackendAPI
	sessions SessionSource
	logg     *logger.Logger

	tasks     chan task
	done      chan struct{}
	closeOnce sync.Once

	stateMu        sync.RWMutex
	lines          []Line
	rowIDByProduct map[int]int
}

type task struct {
	ctx   context.Context
	run   func(ctx context.Context) error
	reply chan error
}

func NewController(api BackendAPI, sessions SessionSource, logg *logger.Logger) *Controller {
	c := &Controller{
		api:            api,
		sessions:       sessions,
		logg:           logg,
		tasks:          make(chan task),
		done:           make(chan struct{}),
		rowIDByProduct: map[int]int{},
	}
	go c.worker()
	return c
}

// Close stops the mutation worker. Pending submitters receive an error.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Controller) worker() {
	for {
		select {
		case t := <-c.tasks:
			if err := t.ctx.Err(); err != nil {
				t.reply <- err
				continue
			}
			t.reply <- t.run(t.ctx)
		case <-c.done:
			return
		}
	}
}

// submit enqueues one operation and waits for it. The unbuffered channel
// makes submission order the execution order.
func (c *Controller) submit(ctx context.Context, run func(context.Context) error) error {
	t := task{ctx: ctx, run: run, reply: make(chan error, 1)}
	select {
	case c.tasks <- t:
		return <-t.reply
	case <-c.done:
		return pkgerrors.New(pkgerrors.CodeInternal, "cart controller closed")
	}
}

// Add puts quantity units of a product in the cart. A non-positive
// quantity defaults to one. An existing row for the product gets its
// quantity raised instead of a duplicate row being created.
func (c *Controller) Add(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	return c.mutate(ctx, "cart.add", func(ctx context.Context, sessionID string) error {
		line, ok := c.resolveLine(ctx, sessionID, productID)
		if ok {
			_, err := c.api.UpdateCartItem(ctx, line.RowID, line.Quantity+quantity)
			return err
		}
		_, err := c.api.AddCartItem(ctx, productID, quantity, sessionID)
		return err
	})
}

// UpdateQuantity sets the quantity on the product's cart row. Zero is
// routed to removal; negatives are rejected.
func (c *Controller) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart quantity cannot be negative").
			WithDetails(map[string]any{"quantity": quantity})
	}
	if quantity == 0 {
		return c.Remove(ctx, productID)
	}
	return c.mutate(ctx, "cart.update_quantity", func(ctx context.Context, sessionID string) error {
		line, ok := c.resolveLine(ctx, sessionID, productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart").
				WithDetails(map[string]any{"productId": productID})
		}
		_, err := c.api.UpdateCartItem(ctx, line.RowID, quantity)
		return err
	})
}

// Remove deletes the product's cart row.
func (c *Controller) Remove(ctx context.Context, productID int) error {
	return c.mutate(ctx, "cart.remove", func(ctx context.Context, sessionID string) error {
		line, ok := c.resolveLine(ctx, sessionID, productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart").
				WithDetails(map[string]any{"productId": productID})
		}
		return c.api.RemoveCartItem(ctx, line.RowID)
	})
}

// Refresh re-derives local state from the backend. It runs through the
// same FIFO so it cannot interleave a mutation's refetch step.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.submit(ctx, func(ctx context.Context) error {
		sessionID, err := c.sessions.SessionID(ctx)
		if err != nil {
			return err
		}
		if err := c.refetch(ctx, sessionID); err != nil {
			c.logError(ctx, "cart.refresh", err)
			return err
		}
		return nil
	})
}

// mutate runs the three-step sequence: mutating call, full refetch,
// whole-value replacement of local state.
func (c *Controller) mutate(ctx context.Context, op string, step func(ctx context.Context, sessionID string) error) error {
	return c.submit(ctx, func(ctx context.Context) error {
		sessionID, err := c.sessions.SessionID(ctx)
		if err != nil {
			c.logError(ctx, op, err)
			return err
		}
		if err := step(ctx, sessionID); err != nil {
			c.logError(ctx, op, err)
			return err
		}
		if err := c.refetch(ctx, sessionID); err != nil {
			c.logError(ctx, op, err)
			return err
		}
		return nil
	})
}

// refetch replaces local state with the converted backend cart. A
// conversion failure rejects the whole refetch and keeps the previous
// snapshot.
func (c *Controller) refetch(ctx context.Context, sessionID string) error {
	items, err := c.api.ListCartItems(ctx, sessionID)
	if err != nil {
		return err
	}
	lines, err := convertItems(items)
	if err != nil {
		return err
	}

	index := make(map[int]int, len(lines))
	for _, line := range lines {
		index[line.ProductID] = line.RowID
	}

	c.stateMu.Lock()
	c.lines = lines
	c.rowIDByProduct = index
	c.stateMu.Unlock()
	return nil
}

// resolveLine finds the cart line for a product, consulting the local
// index first and falling back to one refetch on a miss.
func (c *Controller) resolveLine(ctx context.Context, sessionID string, productID int) (Line, bool) {
	if line, ok := c.lineFor(productID); ok {
		return line, true
	}
	if err := c.refetch(ctx, sessionID); err != nil {
		return Line{}, false
	}
	return c.lineFor(productID)
}

func (c *Controller) lineFor(productID int) (Line, bool) {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if _, ok := c.rowIDByProduct[productID]; !ok {
		return Line{}, false
	}
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return Line{}, false
}

// Items returns a copy of the current cart lines.
func (c *Controller) Items() []Line {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	items := make([]Line, len(c.lines))
	copy(items, c.lines)
	return items
}

// TotalQuantity sums the units across all lines.
func (c *Controller) TotalQuantity() int {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums line totals in minor currency units.
func (c *Controller) Subtotal() int {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	total := 0
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

func (c *Controller) logError(ctx context.Context, op string, err error) {
	if c.logg == nil {
		return
	}
	c.logg.Error(c.logg.WithField(ctx, "op", op), "cart.operation_failed", err)
}
