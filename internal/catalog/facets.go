package catalog

import "github.com/307second/storefront-gateway/internal/backend"

// Facets aggregates the distinct filterable values present across the full,
// unfiltered catalog. MaxPrice seeds the default upper bound of the price
// facet and detects an active price filter.
type Facets struct {
	Categories []string `json:"categories"`
	Conditions []string `json:"conditions"`
	Brands     []string `json:"brands"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	MaxPrice   int      `json:"maxPrice"`
}

// CollectFacets derives facet aggregates in first-seen catalog order.
// Empty brand/size/color values are not facet choices and are skipped.
func CollectFacets(products []backend.Product) Facets {
	facets := Facets{}
	seen := map[string]map[string]bool{
		"category":  {},
		"condition": {},
		"brand":     {},
		"size":      {},
		"color":     {},
	}

	add := func(kind, value string, dest *[]string) {
		if value == "" || seen[kind][value] {
			return
		}
		seen[kind][value] = true
		*dest = append(*dest, value)
	}

	for _, product := range products {
		add("category", product.Category, &facets.Categories)
		add("condition", product.Condition, &facets.Conditions)
		add("brand", product.Brand, &facets.Brands)
		add("size", product.Size, &facets.Sizes)
		add("color", product.Color, &facets.Colors)
		if product.Price > facets.MaxPrice {
			facets.MaxPrice = product.Price
		}
	}
	return facets
}

// ActiveFilterCount counts engaged facets for the filter badge: one per
// selected value plus one when the price band has been narrowed from the
// full [0, maxPrice] range.
func ActiveFilterCount(opts FilterOptions, maxPrice int) int {
	count := len(opts.Categories) + len(opts.Conditions) +
		len(opts.Brands) + len(opts.Sizes) + len(opts.Colors)
	if opts.PriceRange.Low > 0 || opts.PriceRange.High < maxPrice {
		count++
	}
	return count
}
