package prefs

import (
	"sort"
	"strings"
	"sync"

	"github.com/307second/storefront-gateway/internal/catalog"
	pkgerrors "github.com/307second/storefront-gateway/pkg/errors"
)

// ViewMode is the product listing layout.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// ParseViewMode validates a raw view mode value.
func ParseViewMode(raw string) (ViewMode, bool) {
	switch ViewMode(strings.TrimSpace(raw)) {
	case ViewModeGrid:
		return ViewModeGrid, true
	case ViewModeList:
		return ViewModeList, true
	}
	return "", false
}

// State holds the session-local UI preferences: favorited product IDs with
// toggle semantics, the listing view mode and the sort key. Nothing here
// persists or touches the backend; a restart resets it all.
type State struct {
	mu        sync.Mutex
	favorites map[int]struct{}
	viewMode  ViewMode
	sortKey   catalog.SortKey
}

func NewState() *State {
	return &State{
		favorites: map[int]struct{}{},
		viewMode:  ViewModeGrid,
		sortKey:   catalog.SortNewest,
	}
}

// ToggleFavorite flips the product's favorite status and reports the new
// state: true when the product is now favorited.
func (s *State) ToggleFavorite(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[productID]; ok {
		delete(s.favorites, productID)
		return false
	}
	s.favorites[productID] = struct{}{}
	return true
}

// IsFavorite reports whether the product is currently favorited.
func (s *State) IsFavorite(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[productID]
	return ok
}

// Favorites returns the favorited product IDs in ascending order.
func (s *State) Favorites() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// ViewMode returns the current listing layout.
func (s *State) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// SetViewMode validates and stores the listing layout.
func (s *State) SetViewMode(raw string) error {
	mode, ok := ParseViewMode(raw)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown view mode").
			WithDetails(map[string]any{"viewMode": raw})
	}
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()
	return nil
}

// SortKey returns the current sort preference.
func (s *State) SortKey() catalog.SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortKey
}

// SetSortKey validates and stores the sort preference.
func (s *State) SetSortKey(raw string) error {
	key, ok := catalog.ParseSortKey(raw)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").
			WithDetails(map[string]any{"sort": raw})
	}
	s.mu.Lock()
	s.sortKey = key
	s.mu.Unlock()
	return nil
}
