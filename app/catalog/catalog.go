// Package catalog holds the most recently loaded product list and answers
// filter and search queries against it.
//
// The whole catalog is replaced wholesale on every load — there is no
// incremental update. Readers take a snapshot under a read lock, so a load
// in flight never exposes a half-updated catalog.
package catalog

import (
	"strings"
	"sync"

	"github.com/shashiranjanraj/dukaan/app/feed"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/collection"
	"github.com/shashiranjanraj/dukaan/pkg/event"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
)

// EventLoaded is fired on the bus after every successful Load. The payload
// is the product count.
const EventLoaded = "catalog.loaded"

// ProductHook lets the caller transform parsed products before they are
// installed (the image mirror uses this). Must be pure with respect to the
// store.
type ProductHook func([]models.Product) []models.Product

// Store is the in-memory catalog.
type Store struct {
	mu         sync.RWMutex
	products   []models.Product
	categories []string

	opts feed.Options
	hook ProductHook
	bus  *event.Bus
}

// NewStore creates an empty catalog that parses feeds with opts and
// announces loads on bus. Both hook and bus may be nil.
func NewStore(opts feed.Options, hook ProductHook, bus *event.Bus) *Store {
	return &Store{opts: opts, hook: hook, bus: bus}
}

// Load parses raw feed text and atomically replaces the catalog, returning
// the distinct non-empty category labels in first-seen order. On a parse
// failure the previous catalog is retained and the error returned.
func (s *Store) Load(raw string) ([]string, error) {
	products, err := feed.Parse(raw, s.opts)
	if err != nil {
		return nil, err
	}

	if s.hook != nil {
		products = s.hook(products)
	}

	labels := collection.Map(products, func(p models.Product) string { return p.Category })
	labels = collection.Filter(labels, func(c string) bool { return c != "" })
	categories := collection.UniqueBy(labels, func(c string) string { return c })

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.mu.Unlock()

	metrics.CatalogSize.Set(float64(len(products)))
	if s.bus != nil {
		s.bus.Fire(EventLoaded, len(products))
	}

	return append([]string(nil), categories...), nil
}

// Products returns a copy of the full catalog.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// Categories returns the category labels from the last load, first-seen
// order preserved.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// Find returns the product with the given id.
func (s *Store) Find(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.First(s.products, func(p models.Product) bool { return p.ID == id })
}

// Search returns products whose name, description or category contains
// term, case-insensitively. An empty term matches everything. The stored
// catalog is never mutated.
func (s *Store) Search(term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.Products()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Filter(s.products, func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term)
	})
}

// FilterByCategory returns products whose category label matches exactly.
// An empty category means "all".
func (s *Store) FilterByCategory(category string) []models.Product {
	if category == "" {
		return s.Products()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Filter(s.products, func(p models.Product) bool {
		return p.Category == category
	})
}

// View combines Search and FilterByCategory for the API surface: search
// narrows first, then the category filter applies.
func (s *Store) View(term, category string) []models.Product {
	matched := s.Search(term)
	if category == "" {
		return matched
	}
	return collection.Filter(matched, func(p models.Product) bool {
		return p.Category == category
	})
}
