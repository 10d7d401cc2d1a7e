package catalog

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/307second/storefront-gateway/internal/backend"
)

// SortKey orders a filtered product list.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// ParseSortKey validates a raw sort value, defaulting empty input to newest.
func ParseSortKey(raw string) (SortKey, bool) {
	switch SortKey(strings.TrimSpace(raw)) {
	case "":
		return SortNewest, true
	case SortNewest:
		return SortNewest, true
	case SortPopular:
		return SortPopular, true
	case SortPriceLow:
		return SortPriceLow, true
	case SortPriceHigh:
		return SortPriceHigh, true
	}
	return "", false
}

// PriceRange is an inclusive price band in minor currency units.
type PriceRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether price lies within the band.
func (p PriceRange) Contains(price int) bool {
	return price >= p.Low && price <= p.High
}

// FilterOptions is the user-selected facet state. Empty sets select
// everything. Unknown facet values are legal and simply never match.
type FilterOptions struct {
	Categories []string   `json:"categories"`
	Conditions []string   `json:"conditions"`
	PriceRange PriceRange `json:"priceRange"`
	Brands     []string   `json:"brands"`
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
}

// Filter returns the products matching the search text and every selected
// facet. Pure: the input slice is never reordered or mutated.
//
// The search clause matches case-insensitively against name, description
// and brand only; a missing brand just skips that leg. Missing brand, size
// and color facet values match under an empty-string convention.
func Filter(products []backend.Product, query string, opts FilterOptions) []backend.Product {
	needle := strings.ToLower(strings.TrimSpace(query))

	matched := make([]backend.Product, 0, len(products))
	for _, product := range products {
		if !matchesSearch(product, needle) {
			continue
		}
		if !matchesSet(opts.Categories, product.Category) {
			continue
		}
		if !matchesSet(opts.Conditions, product.Condition) {
			continue
		}
		if !opts.PriceRange.Contains(product.Price) {
			continue
		}
		if !matchesSet(opts.Brands, product.Brand) {
			continue
		}
		if !matchesSet(opts.Sizes, product.Size) {
			continue
		}
		if !matchesSet(opts.Colors, product.Color) {
			continue
		}
		matched = append(matched, product)
	}
	return matched
}

func matchesSearch(product backend.Product, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(product.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(product.Description), needle) {
		return true
	}
	return product.Brand != "" && strings.Contains(strings.ToLower(product.Brand), needle)
}

func matchesSet(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, candidate := range selected {
		if candidate == value {
			return true
		}
	}
	return false
}

// Sort orders a copy of products by the given key. Price sorts are stable;
// newest preserves catalog fetch order as the recency proxy. Popular is an
// explicit full reshuffle on every call, drawn from rng, and is the one
// deliberately non-idempotent ordering.
func Sort(products []backend.Product, key SortKey, rng *rand.Rand) []backend.Product {
	ordered := make([]backend.Product, len(products))
	copy(ordered, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Price < ordered[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Price > ordered[j].Price
		})
	case SortPopular:
		if rng == nil {
			rng = rand.New(rand.NewSource(rand.Int63()))
		}
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	case SortNewest:
		// Fetch order stands in for recency.
	}
	return ordered
}

// FilterAndSort runs the whole pipeline in one call.
func FilterAndSort(products []backend.Product, query string, opts FilterOptions, key SortKey, rng *rand.Rand) []backend.Product {
	return Sort(Filter(products, query, opts), key, rng)
}
