package cache

import (
	"context"
	"fmt"
	"time"

	"bookcatalog/internal/adapters"
	"bookcatalog/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/shopspring/decimal"
)

const currentRateKey = "rate:current"

// CachedRateRepository serves the current rate from ristretto and falls back to the wrapped repository.
// Replace writes through and refreshes the entry before returning, so callers holding the
// exclusive rate lock never leave a stale value behind.
type CachedRateRepository struct {
	next  adapters.RateRepository
	cache *ristretto.Cache
}

func NewCachedRateRepository(next adapters.RateRepository, maxItems int64) (*CachedRateRepository, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		// every entry costs 1, so MaxCost is an item count
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &CachedRateRepository{next: next, cache: c}, nil
}

func (c *CachedRateRepository) Current(ctx context.Context) (domain.Rate, error) {
	if v, ok := c.cache.Get(currentRateKey); ok {
		if rate, ok := v.(domain.Rate); ok {
			return rate, nil
		}
	}

	rate, err := c.next.Current(ctx)
	if err != nil {
		return domain.Rate{}, err
	}
	c.cache.Set(currentRateKey, rate, 1)
	return rate, nil
}

func (c *CachedRateRepository) Replace(ctx context.Context, value decimal.Decimal, capturedAt time.Time) error {
	c.cache.Del(currentRateKey)
	if err := c.next.Replace(ctx, value, capturedAt); err != nil {
		c.cache.Wait()
		return err
	}
	c.cache.Set(currentRateKey, domain.Rate{Value: value, CapturedAt: capturedAt}, 1)
	c.cache.Wait()
	return nil
}

func (c *CachedRateRepository) Close() { c.cache.Close() }
