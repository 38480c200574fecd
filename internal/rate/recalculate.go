package rate

import (
	"context"
	"fmt"

	"bookcatalog/internal/adapters"
	"bookcatalog/internal/domain"
)

// recalculateAll rewrites the EUR price of every book that has a UAH price, soft-deleted books included.
// Only the price is written back, so a book soft-deleted after the listing stays deleted.
// It stops at the first failed save; books saved before that keep their new price.
func recalculateAll(ctx context.Context, books adapters.BookRepository, rate domain.Rate) (int, error) {
	all, err := books.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list books for recalculation: %w", err)
	}

	updated := 0
	for _, book := range all {
		if !book.Price.Recalculate(rate) {
			continue
		}
		if err = books.SavePrice(ctx, book.ID, book.Price); err != nil {
			return updated, fmt.Errorf("failed to save recalculated book %d after %d updates: %w", book.ID, updated, err)
		}
		updated++
	}
	return updated, nil
}
