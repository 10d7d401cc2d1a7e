package catalog

import (
	"reflect"
	"testing"
)

func TestCollectFacets(t *testing.T) {
	facets := CollectFacets(fixtureCatalog())

	if !reflect.DeepEqual(facets.Categories, []string{"jackets", "shirts", "pants", "dresses"}) {
		t.Fatalf("unexpected categories %v", facets.Categories)
	}
	if !reflect.DeepEqual(facets.Conditions, []string{"Good", "Excellent", "Fair"}) {
		t.Fatalf("unexpected conditions %v", facets.Conditions)
	}
	// The brandless product contributes no empty-string facet value.
	if !reflect.DeepEqual(facets.Brands, []string{"Levi's", "Hanes", "Fruit of the Loom", "Wilson's Leather", "Gap"}) {
		t.Fatalf("unexpected brands %v", facets.Brands)
	}
	if facets.MaxPrice != 1275000 {
		t.Fatalf("expected max price 1275000, got %d", facets.MaxPrice)
	}
}

func TestCollectFacetsEmptyCatalog(t *testing.T) {
	facets := CollectFacets(nil)
	if facets.MaxPrice != 0 || len(facets.Categories) != 0 {
		t.Fatalf("empty catalog should produce zero facets, got %+v", facets)
	}
}

func TestActiveFilterCount(t *testing.T) {
	maxPrice := 1275000

	if got := ActiveFilterCount(FilterOptions{PriceRange: PriceRange{Low: 0, High: maxPrice}}, maxPrice); got != 0 {
		t.Fatalf("untouched filters should count 0, got %d", got)
	}

	opts := FilterOptions{
		Categories: []string{"jackets", "shirts"},
		Brands:     []string{"Levi's"},
		PriceRange: PriceRange{Low: 350000, High: maxPrice},
	}
	if got := ActiveFilterCount(opts, maxPrice); got != 4 {
		t.Fatalf("expected 4 active filters (2 categories, 1 brand, price), got %d", got)
	}
}
