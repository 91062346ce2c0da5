package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/delicioso/admin-gateway/internal/models"
	"golang.org/x/sync/singleflight"
)

var ErrUnknownProduct = errors.New("unknown product selection")

// ProductLister fetches the catalog from the backend.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Cache holds a read-only snapshot of the last fetched product catalog.
// Cart additions resolve their product against this snapshot, so it can go
// stale relative to the server; it is refreshed when the order screen is
// (re-)entered, never in the background. Staleness is an accepted tradeoff.
type Cache struct {
	backend ProductLister

	mu        sync.RWMutex
	products  []models.Product
	refreshed time.Time

	sfg singleflight.Group // collapses concurrent refreshes
}

// NewCache creates an empty catalog cache backed by the given lister.
func NewCache(backend ProductLister) *Cache {
	return &Cache{backend: backend}
}

// Refresh fetches the catalog and replaces the snapshot. Concurrent calls
// share a single backend request. On error the previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context) ([]models.Product, error) {
	v, err, _ := c.sfg.Do("produtos", func() (interface{}, error) {
		products, err := c.backend.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.products = products
		c.refreshed = time.Now()
		c.mu.Unlock()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return copyProducts(v.([]models.Product)), nil
}

// Products returns a copy of the current snapshot.
func (c *Cache) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyProducts(c.products)
}

// ResolveByIndex resolves a selection index against the snapshot, mirroring
// the order screen's product dropdown.
func (c *Cache) ResolveByIndex(idx int) (*models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if idx < 0 || idx >= len(c.products) {
		return nil, ErrUnknownProduct
	}
	p := c.products[idx]
	return &p, nil
}

// ResolveByID resolves a product ID against the snapshot.
func (c *Cache) ResolveByID(id int64) (*models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, ErrUnknownProduct
}

// Invalidate drops the snapshot so the next Refresh repopulates it. Called
// after a product is created through the gateway.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.refreshed = time.Time{}
	c.mu.Unlock()
}

// RefreshedAt reports when the snapshot was last populated. Zero means never.
func (c *Cache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}

func copyProducts(src []models.Product) []models.Product {
	dst := make([]models.Product, len(src))
	copy(dst, src)
	return dst
}
