package book

import (
	"context"
	"fmt"

	"bookcatalog/internal/adapters"
	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// rateGuard hands out the current rate while holding the rate lock in shared mode.
type rateGuard interface {
	WithRate(ctx context.Context, fn func(ctx context.Context, rate *domain.Rate) error) error
}

type CreateInput struct {
	ISBN            string
	Title           string
	Author          *string
	PublicationYear *int
	PriceUAH        decimal.Decimal
}

// UpdateInput carries only the fields present in the request; nil means keep the stored value.
type UpdateInput struct {
	ISBN            *string
	Title           *string
	Author          *string
	PublicationYear *int
	PriceUAH        *decimal.Decimal
}

type Service struct {
	books adapters.BookRepository
	rates rateGuard
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Book, error) {
	if err := checkPriceUAH(in.PriceUAH); err != nil {
		return domain.Book{}, err
	}

	var created domain.Book
	err := s.rates.WithRate(ctx, func(ctx context.Context, rate *domain.Rate) error {
		exists, err := s.books.ExistsActiveISBN(ctx, in.ISBN)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrISBNConflict
		}

		created, err = s.books.Create(ctx, domain.Book{
			ISBN:            in.ISBN,
			Title:           in.Title,
			Author:          in.Author,
			PublicationYear: in.PublicationYear,
			Price:           domain.NewPrice(in.PriceUAH, rate),
		})
		return err
	})
	if err != nil {
		return domain.Book{}, err
	}

	logrus.WithFields(logrus.Fields{"book_id": created.ID, "isbn": created.ISBN}).Info("Book created")
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	if err := req.Validate(); err != nil {
		return domain.Page{}, err
	}
	return s.books.FindActive(ctx, req)
}

// Update applies the present fields. EUR is derived again only when a new UAH amount is supplied.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (domain.Book, error) {
	if in.PriceUAH != nil {
		if err := checkPriceUAH(*in.PriceUAH); err != nil {
			return domain.Book{}, err
		}
	}

	var updated domain.Book
	err := s.rates.WithRate(ctx, func(ctx context.Context, rate *domain.Rate) error {
		book, err := s.books.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if in.ISBN != nil && *in.ISBN != book.ISBN {
			exists, err := s.books.ExistsActiveISBN(ctx, *in.ISBN)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrISBNConflict
			}
			book.ISBN = *in.ISBN
		}
		if in.Title != nil {
			book.Title = *in.Title
		}
		if in.Author != nil {
			book.Author = in.Author
		}
		if in.PublicationYear != nil {
			book.PublicationYear = in.PublicationYear
		}
		if in.PriceUAH != nil {
			book.Price = domain.NewPrice(*in.PriceUAH, rate)
		}

		if err = s.books.Save(ctx, book); err != nil {
			return err
		}
		updated = book
		return nil
	})
	if err != nil {
		return domain.Book{}, err
	}

	logrus.WithField("book_id", id).Info("Book updated")
	return updated, nil
}

// Delete marks the book as deleted. Prices are untouched so the rate lock is not taken.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.books.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	logrus.WithField("book_id", id).Info("Book deleted")
	return nil
}

func NewService(books adapters.BookRepository, rates rateGuard) *Service {
	return &Service{books: books, rates: rates}
}
