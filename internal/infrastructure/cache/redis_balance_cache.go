package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	appfinance "github.com/zaoknom/docbox-backend/internal/application/finance"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/config"
)

const (
	balanceKey = "docbox:cashbox:balance"
	balanceTTL = 24 * time.Hour
)

// RedisBalanceCache keeps the cashbox balance in Redis so the
// supplier API does not hit the books on every poll. The key expires
// on its own; writes through the transaction service invalidate it.
type RedisBalanceCache struct {
	client *redis.Client
	key    string
}

// NewRedisBalanceCache connects to Redis and returns a balance cache
func NewRedisBalanceCache(cfg config.RedisConfig) (*RedisBalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBalanceCache{client: client, key: balanceKey}, nil
}

// NewRedisBalanceCacheWithClient wraps an existing Redis client. Useful
// for tests or when sharing a client across components.
func NewRedisBalanceCacheWithClient(client *redis.Client, key string) *RedisBalanceCache {
	if key == "" {
		key = balanceKey
	}
	return &RedisBalanceCache{client: client, key: key}
}

// Get returns the cached balance. A missing or unreadable key is a
// miss, not an error.
func (c *RedisBalanceCache) Get(ctx context.Context) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read cached balance: %w", err)
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, nil
	}
	return balance, true, nil
}

// Set stores the balance with a TTL
func (c *RedisBalanceCache) Set(ctx context.Context, balance decimal.Decimal) error {
	if err := c.client.Set(ctx, c.key, balance.String(), balanceTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache balance: %w", err)
	}
	return nil
}

// Invalidate drops the cached balance
func (c *RedisBalanceCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached balance: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

// Ensure RedisBalanceCache implements BalanceCache
var _ appfinance.BalanceCache = (*RedisBalanceCache)(nil)
