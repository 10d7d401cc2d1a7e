package backend

// Product is a catalog entry as the backend serves it. Immutable once
// fetched. Prices are integers in the smallest currency unit. Timestamps
// stay opaque strings; nothing here orders or parses them.
type Product struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	OriginalPrice *int   `json:"originalPrice,omitempty"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Condition     string `json:"condition"`
	Description   string `json:"description"`
	Size          string `json:"size,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Color         string `json:"color,omitempty"`
	Material      string `json:"material,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// CartItem is a backend cart row: a session's (product, quantity) pairing
// keyed by a backend-assigned identifier. The embedded product is present
// on list responses and absent on bare mutation responses.
type CartItem struct {
	ID        int      `json:"id"`
	ProductID int      `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	SessionID string   `json:"sessionId,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// ProductInput carries the writable product fields for create/update calls.
type ProductInput struct {
	Name          string `json:"name,omitempty"`
	Price         int    `json:"price,omitempty"`
	OriginalPrice *int   `json:"originalPrice,omitempty"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category,omitempty"`
	Condition     string `json:"condition,omitempty"`
	Description   string `json:"description,omitempty"`
	Size          string `json:"size,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Color         string `json:"color,omitempty"`
	Material      string `json:"material,omitempty"`
}
