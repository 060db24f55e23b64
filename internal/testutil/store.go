package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
)

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(ctx context.Context, item T, filter interface{}) bool

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// InMemoryStore implements a generic in-memory store
type InMemoryStore[T any] struct {
	mu     sync.RWMutex
	items  map[string]T
	entity string
}

// NewInMemoryStore creates a new InMemoryStore. entity names the record in errors.
func NewInMemoryStore[T any](entity string) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items:  make(map[string]T),
		entity: entity,
	}
}

// Create adds a new item to the store
func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("%s already exists", s.entity).
			WithHintf("%s already exists", s.entity).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = item
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, exists := s.items[id]; exists {
		return item, nil
	}

	var zero T
	return zero, s.notFound()
}

// Find returns the first item matching fn
func (s *InMemoryStore[T]) Find(ctx context.Context, fn func(T) bool) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if fn(item) {
			return item, nil
		}
	}

	var zero T
	return zero, s.notFound()
}

// List retrieves items based on filter
func (s *InMemoryStore[T]) List(ctx context.Context, filter interface{}, filterFn FilterFunc[T], sortFn SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item, filter) {
			result = append(result, item)
		}
	}

	if sortFn != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}

	// Apply pagination if filter implements BaseFilter
	if f, ok := filter.(types.BaseFilter); ok && !f.IsUnlimited() {
		start := f.GetOffset()
		if start >= len(result) {
			return []T{}, nil
		}

		end := start + f.GetLimit()
		if end > len(result) {
			end = len(result)
		}
		return result[start:end], nil
	}

	return result, nil
}

// Count returns the total number of items matching the filter
func (s *InMemoryStore[T]) Count(ctx context.Context, filter interface{}, filterFn FilterFunc[T]) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item, filter) {
			count++
		}
	}

	return count, nil
}

// Update updates an existing item
func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound()
	}

	s.items[id] = item
	return nil
}

// Delete removes an item from the store
func (s *InMemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound()
	}

	delete(s.items, id)
	return nil
}

// DeleteWhere removes every item matching fn
func (s *InMemoryStore[T]) DeleteWhere(fn func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if fn(item) {
			delete(s.items, id)
		}
	}
}

// All returns every item in no particular order
func (s *InMemoryStore[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item)
	}
	return result
}

// Clear removes all items from the store
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

func (s *InMemoryStore[T]) notFound() error {
	return ierr.NewErrorf("%s not found", s.entity).
		WithHintf("%s not found", s.entity).
		Mark(ierr.ErrNotFound)
}

// matchesSearch mirrors ILIKE '%term%' over any of the values
func matchesSearch(term string, values ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// orderBy builds a sort function from the filter ordering. comparators maps
// ordering fields to a three way comparison; unknown fields fall back to
// -created_at. ids break ties the way the SQL repositories do.
func orderBy[T any](filter *types.QueryFilter, comparators map[string]func(a, b T) int, id func(T) string) SortFunc[T] {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	field, direction := filter.ParseOrdering()
	cmp, ok := comparators[field]
	if !ok {
		cmp, direction = comparators["created_at"], types.OrderDesc
	}

	return func(a, b T) bool {
		c := cmp(a, b)
		if c == 0 {
			c = strings.Compare(id(a), id(b))
		}
		if direction == types.OrderDesc {
			return c > 0
		}
		return c < 0
	}
}
