package cart

import (
	"github.com/307second/storefront-gateway/internal/backend"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
)

// Line is a renderable cart line: a backend row joined with its product.
type Line struct {
	RowID     int             `json:"rowId"`
	ProductID int             `json:"productId"`
	Product   backend.Product `json:"product"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is the line price in minor currency units.
func (l Line) LineTotal() int {
	return l.Product.Price * l.Quantity
}

// convertItems turns backend rows into cart lines. A row without an
// embedded product cannot be rendered or priced; that is a data fault and
// fails the whole conversion rather than dropping the row silently.
func convertItems(items []backend.CartItem) ([]Line, error) {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeMissingProduct, "cart row has no embedded product").
				WithDetails(map[string]any{"rowId": item.ID, "productId": item.ProductID})
		}
		lines = append(lines, Line{
			RowID:     item.ID,
			ProductID: item.ProductID,
			Product:   *item.Product,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}
