package prefs

import (
	"reflect"
	"testing"

	"github.com/307second/storefront-gateway/internal/catalog"
)

func TestToggleFavoriteFlipsBothWays(t *testing.T) {
	state := NewState()

	if !state.ToggleFavorite(7) {
		t.Fatal("first toggle must favorite")
	}
	if !state.IsFavorite(7) {
		t.Fatal("product should be favorited")
	}
	if state.ToggleFavorite(7) {
		t.Fatal("second toggle must unfavorite")
	}
	if state.IsFavorite(7) {
		t.Fatal("product should no longer be favorited")
	}
}

func TestFavoritesSortedSnapshot(t *testing.T) {
	state := NewState()
	for _, id := range []int{9, 3, 12} {
		state.ToggleFavorite(id)
	}
	if got := state.Favorites(); !reflect.DeepEqual(got, []int{3, 9, 12}) {
		t.Fatalf("unexpected favorites %v", got)
	}
}

func TestViewModeValidation(t *testing.T) {
	state := NewState()
	if state.ViewMode() != ViewModeGrid {
		t.Fatalf("grid is the default, got %q", state.ViewMode())
	}
	if err := state.SetViewMode("list"); err != nil {
		t.Fatalf("list is valid: %v", err)
	}
	if state.ViewMode() != ViewModeList {
		t.Fatalf("expected list, got %q", state.ViewMode())
	}
	if err := state.SetViewMode("carousel"); err == nil {
		t.Fatal("unknown mode must be rejected")
	}
	if state.ViewMode() != ViewModeList {
		t.Fatal("rejected mode must not clobber the current one")
	}
}

func TestSortKeyValidation(t *testing.T) {
	state := NewState()
	if state.SortKey() != catalog.SortNewest {
		t.Fatalf("newest is the default, got %q", state.SortKey())
	}
	if err := state.SetSortKey("price-high"); err != nil {
		t.Fatalf("price-high is valid: %v", err)
	}
	if err := state.SetSortKey("cheapest"); err == nil {
		t.Fatal("unknown sort key must be rejected")
	}
}
