package rate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookcatalog/internal/adapters"
	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
)

// Lock is the reader/writer primitive guarding the current rate together with every derived EUR price.
// *sync.RWMutex satisfies it.
type Lock interface {
	RLock()
	RUnlock()
	Lock()
	Unlock()
}

// Coordinator serializes rate changes against single book writes.
// Book creates and updates share the lock; a rate change holds it exclusively while every book is recalculated.
// Operations run to completion once the lock is taken, caller cancellation is not propagated.
type Coordinator struct {
	lock  Lock
	rates adapters.RateRepository
	books adapters.BookRepository
	now   func() time.Time
}

func NewCoordinator(rates adapters.RateRepository, books adapters.BookRepository) *Coordinator {
	return &Coordinator{lock: &sync.RWMutex{}, rates: rates, books: books, now: time.Now}
}

// Shared runs fn holding the lock in shared mode.
func (c *Coordinator) Shared(fn func() error) error {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return fn()
}

// Exclusive runs fn holding the lock in exclusive mode.
func (c *Coordinator) Exclusive(fn func() error) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return fn()
}

// WithRate runs fn in shared mode with the current rate, or nil when no rate is stored yet.
func (c *Coordinator) WithRate(ctx context.Context, fn func(ctx context.Context, rate *domain.Rate) error) error {
	ctx = context.WithoutCancel(ctx)
	return c.Shared(func() error {
		rate, err := c.rates.Current(ctx)
		if errors.Is(err, domain.ErrRateNotFound) {
			return fn(ctx, nil)
		}
		if err != nil {
			return fmt.Errorf("failed to read current rate: %w", err)
		}
		return fn(ctx, &rate)
	})
}

// Apply stores value as the current rate and recalculates every book in exclusive mode.
// It returns the number of books whose EUR price was rewritten.
func (c *Coordinator) Apply(ctx context.Context, value decimal.Decimal) (int, error) {
	if !value.IsPositive() {
		return 0, domain.ErrInvalidRate
	}
	ctx = context.WithoutCancel(ctx)

	var recalculated int
	err := c.Exclusive(func() error {
		rate := domain.Rate{Value: value, CapturedAt: c.now().UTC()}
		if err := c.rates.Replace(ctx, rate.Value, rate.CapturedAt); err != nil {
			return fmt.Errorf("failed to store rate %s: %w", value, err)
		}
		var err error
		recalculated, err = recalculateAll(ctx, c.books, rate)
		return err
	})
	return recalculated, err
}
