package cache

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	appfinance "github.com/zaoknom/docbox-backend/internal/application/finance"
)

// InMemoryBalanceCache is a process-local balance cache for
// single-instance deployments and tests where Redis is not worth
// running.
type InMemoryBalanceCache struct {
	mu      sync.RWMutex
	balance decimal.Decimal
	valid   bool
}

// NewInMemoryBalanceCache creates a new in-memory balance cache
func NewInMemoryBalanceCache() *InMemoryBalanceCache {
	return &InMemoryBalanceCache{}
}

// Get returns the cached balance if one is stored
func (c *InMemoryBalanceCache) Get(_ context.Context) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.balance, c.valid, nil
}

// Set stores the balance
func (c *InMemoryBalanceCache) Set(_ context.Context, balance decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance = balance
	c.valid = true
	return nil
}

// Invalidate drops the cached balance
func (c *InMemoryBalanceCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance = decimal.Zero
	c.valid = false
	return nil
}

// Ensure InMemoryBalanceCache implements BalanceCache
var _ appfinance.BalanceCache = (*InMemoryBalanceCache)(nil)
