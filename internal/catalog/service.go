package catalog

import (
	"context"
	"fmt"
	"sync"

	"teahouse-kiosk/internal/logger"

	"go.uber.org/zap"
)

// Cache loads the product list once and serves copies of it afterwards.
type Cache struct {
	source Source

	mu       sync.RWMutex
	products []Product
	loaded   bool
}

func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Load returns the cached products, fetching them on first use. A failed
// fetch is not remembered, so the next call tries the source again.
func (c *Cache) Load(ctx context.Context) ([]Product, error) {
	c.mu.RLock()
	if c.loaded {
		out := clone(c.products)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	return c.fetch(ctx, false)
}

// Refresh discards the cached list and fetches it again.
func (c *Cache) Refresh(ctx context.Context) ([]Product, error) {
	return c.fetch(ctx, true)
}

func (c *Cache) fetch(ctx context.Context, force bool) ([]Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && !force {
		return clone(c.products), nil
	}

	log := logger.FromCtx(ctx)
	log.Info("loading catalog", zap.Bool("refresh", force))

	products, err := c.source.ListProducts(ctx)
	if err != nil {
		log.Warn("catalog source failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if err := validate(products); err != nil {
		log.Warn("catalog source returned malformed data", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	c.products = clone(products)
	c.loaded = true

	log.Info("catalog loaded", zap.Int("products", len(products)))
	return clone(c.products), nil
}

func clone(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
