package adapters

import (
	"context"
	"time"

	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
)

// RateClient fetches the EUR/UAH rate from an external source.
type RateClient interface {
	GetRate(ctx context.Context) (decimal.Decimal, error)
}

// RateRepository keeps the single current rate.
type RateRepository interface {
	// Current returns domain.ErrRateNotFound when no rate has been stored yet.
	Current(ctx context.Context) (domain.Rate, error)
	// Replace drops any stored rate and stores the given one.
	Replace(ctx context.Context, value decimal.Decimal, capturedAt time.Time) error
}

// BookRepository stores books with soft delete semantics.
type BookRepository interface {
	ExistsActiveISBN(ctx context.Context, isbn string) (bool, error)
	Create(ctx context.Context, book domain.Book) (domain.Book, error)
	// FindByID returns domain.ErrBookNotFound for missing and soft-deleted books.
	FindByID(ctx context.Context, id int64) (domain.Book, error)
	// FindByIDIncludingDeleted returns domain.ErrBookNotFound only for missing books.
	FindByIDIncludingDeleted(ctx context.Context, id int64) (domain.Book, error)
	FindActive(ctx context.Context, req domain.PageRequest) (domain.Page, error)
	// Save writes the full state of an active book. A book that is missing or
	// already soft-deleted yields domain.ErrBookNotFound and stays untouched.
	Save(ctx context.Context, book domain.Book) error
	// SavePrice writes only the price of a book, soft-deleted ones included.
	// The deleted flag and the ISBN are left as stored.
	SavePrice(ctx context.Context, id int64, price domain.Price) error
	// SoftDelete only flips the deleted flag.
	SoftDelete(ctx context.Context, id int64) error
	// ListAll returns every book, soft-deleted ones included.
	ListAll(ctx context.Context) ([]domain.Book, error)
}
