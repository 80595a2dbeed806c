// Package static serves the catalog from a dataset embedded in the binary.
// Stock levels are the only mutable state and are guarded by a RWMutex.
package static

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/boolshop/storefront/internal/catalog/application"
	"github.com/boolshop/storefront/internal/catalog/domain"
)

//go:embed products.json
var productsJSON []byte

type Repository struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]int
	bySlug   map[string]int
}

func NewRepository() (*Repository, error) {
	var products []domain.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}

	r := &Repository{
		products: products,
		byID:     make(map[int64]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		if p.Slug == "" {
			r.products[i].Slug = domain.Slugify(p.Name)
		}
		r.byID[p.ID] = i
		r.bySlug[r.products[i].Slug] = i
	}
	return r, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *Repository) ByID(ctx context.Context, id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return domain.Product{}, application.ErrProductNotFound
	}
	return r.products[i], nil
}

func (r *Repository) BySlug(ctx context.Context, slug string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.bySlug[slug]
	if !ok {
		return domain.Product{}, application.ErrProductNotFound
	}
	return r.products[i], nil
}

// StockLevels returns the current stock for the requested product IDs.
// Unknown IDs are reported with stock 0 so checkout can flag them.
func (r *Repository) StockLevels(ctx context.Context, ids []int64) (map[int64]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	levels := make(map[int64]int, len(ids))
	for _, id := range ids {
		if i, ok := r.byID[id]; ok {
			levels[id] = r.products[i].InStock
		} else {
			levels[id] = 0
		}
	}
	return levels, nil
}

// ReserveStock decrements stock for every requested product, or leaves the
// catalog untouched if any line cannot be satisfied.
func (r *Repository) ReserveStock(ctx context.Context, quantities map[int64]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, qty := range quantities {
		i, ok := r.byID[id]
		if !ok {
			return fmt.Errorf("reserve product %d: %w", id, application.ErrProductNotFound)
		}
		if r.products[i].InStock < qty {
			return fmt.Errorf("reserve product %d: stock %d below requested %d",
				id, r.products[i].InStock, qty)
		}
	}
	for id, qty := range quantities {
		r.products[r.byID[id]].InStock -= qty
	}
	return nil
}

// ReleaseStock returns previously reserved quantities to the catalog.
// Unknown IDs are skipped rather than failing a compensation path.
func (r *Repository) ReleaseStock(ctx context.Context, quantities map[int64]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, qty := range quantities {
		if i, ok := r.byID[id]; ok {
			r.products[i].InStock += qty
		}
	}
	return nil
}
