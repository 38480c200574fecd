package badgerdb

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"bookcatalog/internal/domain"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
)

const (
	bookPrefix = "book:"
	isbnPrefix = "isbn:"
	bookSeqKey = "seq:books"
)

type bookRecord struct {
	ID              int64               `json:"id"`
	ISBN            string              `json:"isbn"`
	Title           string              `json:"title"`
	Author          *string             `json:"author,omitempty"`
	PublicationYear *int                `json:"publication_year,omitempty"`
	PriceUAH        decimal.NullDecimal `json:"price_uah"`
	PriceEUR        decimal.NullDecimal `json:"price_eur"`
	Deleted         bool                `json:"deleted"`
}

// BookRepository stores books as JSON under book:<id>. Active books also own an isbn:<isbn> index key,
// which is what makes isbn unique among non-deleted books.
type BookRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func (r *BookRepository) ExistsActiveISBN(_ context.Context, isbn string) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(isbnKey(isbn))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check isbn %q: %w", isbn, err)
	}
	return true, nil
}

func (r *BookRepository) Create(_ context.Context, book domain.Book) (domain.Book, error) {
	next, err := r.seq.Next()
	if err != nil {
		return domain.Book{}, fmt.Errorf("failed to allocate book id: %w", err)
	}
	book.ID = int64(next) + 1

	err = update(r.db, func(txn *badger.Txn) error {
		if !book.Deleted {
			if _, err := txn.Get(isbnKey(book.ISBN)); err == nil {
				return domain.ErrISBNConflict
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set(isbnKey(book.ISBN), idValue(book.ID)); err != nil {
				return err
			}
		}
		return putBook(txn, book)
	})
	if err != nil {
		if errors.Is(err, domain.ErrISBNConflict) {
			return domain.Book{}, err
		}
		return domain.Book{}, fmt.Errorf("failed to insert book %q: %w", book.ISBN, err)
	}
	return book, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id int64) (domain.Book, error) {
	book, err := r.FindByIDIncludingDeleted(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}
	if book.Deleted {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return book, nil
}

func (r *BookRepository) FindByIDIncludingDeleted(_ context.Context, id int64) (domain.Book, error) {
	var book domain.Book
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		book, err = getBook(txn, id)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Book{}, domain.ErrBookNotFound
	}
	if err != nil {
		return domain.Book{}, fmt.Errorf("failed to read book %d: %w", id, err)
	}
	return book, nil
}

// FindActive loads every active book and pages in memory.
func (r *BookRepository) FindActive(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	compare, ok := comparators[req.Sort.Field]
	if !ok {
		return domain.Page{}, fmt.Errorf("%w: unsupported sort field %q", domain.ErrInvalidPage, req.Sort.Field)
	}

	all, err := r.ListAll(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	active := slices.DeleteFunc(all, func(b domain.Book) bool { return b.Deleted })

	slices.SortStableFunc(active, func(a, b domain.Book) int {
		if c := compare(a, b, req.Sort.Desc); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := int64(len(active))
	from := min(req.Offset(), len(active))
	to := min(from+req.Size, len(active))
	return domain.Page{Books: slices.Clone(active[from:to]), Total: total}, nil
}

func (r *BookRepository) Save(_ context.Context, book domain.Book) error {
	err := update(r.db, func(txn *badger.Txn) error {
		prev, err := getBook(txn, book.ID)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrBookNotFound
		}
		if err != nil {
			return err
		}
		if prev.Deleted {
			return domain.ErrBookNotFound
		}

		if prev.ISBN != book.ISBN || book.Deleted {
			if err = releaseISBN(txn, prev.ISBN, prev.ID); err != nil {
				return err
			}
		}
		if !book.Deleted {
			if err = claimISBN(txn, book.ISBN, book.ID); err != nil {
				return err
			}
		}
		return putBook(txn, book)
	})
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) || errors.Is(err, domain.ErrISBNConflict) {
			return err
		}
		return fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	return nil
}

func (r *BookRepository) SavePrice(_ context.Context, id int64, price domain.Price) error {
	err := update(r.db, func(txn *badger.Txn) error {
		book, err := getBook(txn, id)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrBookNotFound
		}
		if err != nil {
			return err
		}
		book.Price = price
		return putBook(txn, book)
	})
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return err
		}
		return fmt.Errorf("failed to update price of book %d: %w", id, err)
	}
	return nil
}

func (r *BookRepository) SoftDelete(_ context.Context, id int64) error {
	err := update(r.db, func(txn *badger.Txn) error {
		book, err := getBook(txn, id)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrBookNotFound
		}
		if err != nil {
			return err
		}
		if book.Deleted {
			return nil
		}
		if err = releaseISBN(txn, book.ISBN, book.ID); err != nil {
			return err
		}
		book.Deleted = true
		return putBook(txn, book)
	})
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return err
		}
		return fmt.Errorf("failed to soft delete book %d: %w", id, err)
	}
	return nil
}

func (r *BookRepository) ListAll(_ context.Context) ([]domain.Book, error) {
	books := make([]domain.Book, 0, 32)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec bookRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			books = append(books, rec.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Close releases the id sequence; the badger handle is closed by its owner.
func (r *BookRepository) Close() error {
	return r.seq.Release()
}

func claimISBN(txn *badger.Txn, isbn string, id int64) error {
	item, err := txn.Get(isbnKey(isbn))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return txn.Set(isbnKey(isbn), idValue(id))
	}
	if err != nil {
		return err
	}
	owner, err := readID(item)
	if err != nil {
		return err
	}
	if owner != id {
		return domain.ErrISBNConflict
	}
	return nil
}

func releaseISBN(txn *badger.Txn, isbn string, id int64) error {
	item, err := txn.Get(isbnKey(isbn))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	owner, err := readID(item)
	if err != nil {
		return err
	}
	if owner != id {
		return nil
	}
	return txn.Delete(isbnKey(isbn))
}

func getBook(txn *badger.Txn, id int64) (domain.Book, error) {
	item, err := txn.Get(bookKey(id))
	if err != nil {
		return domain.Book{}, err
	}
	var rec bookRecord
	if err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return domain.Book{}, err
	}
	return rec.toDomain(), nil
}

func putBook(txn *badger.Txn, book domain.Book) error {
	data, err := json.Marshal(newBookRecord(book))
	if err != nil {
		return fmt.Errorf("failed to marshal book: %w", err)
	}
	return txn.Set(bookKey(book.ID), data)
}

func readID(item *badger.Item) (int64, error) {
	var id int64
	err := item.Value(func(val []byte) error {
		var err error
		id, err = strconv.ParseInt(string(val), 10, 64)
		return err
	})
	return id, err
}

// bookKey zero-pads ids so the prefix scan returns books in id order.
func bookKey(id int64) []byte { return []byte(fmt.Sprintf("%s%020d", bookPrefix, id)) }

func isbnKey(isbn string) []byte { return []byte(isbnPrefix + isbn) }

func idValue(id int64) []byte { return []byte(strconv.FormatInt(id, 10)) }

func newBookRecord(b domain.Book) bookRecord {
	return bookRecord{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		PriceUAH:        b.Price.UAH,
		PriceEUR:        b.Price.EUR,
		Deleted:         b.Deleted,
	}
}

func (rec bookRecord) toDomain() domain.Book {
	return domain.Book{
		ID:              rec.ID,
		ISBN:            rec.ISBN,
		Title:           rec.Title,
		Author:          rec.Author,
		PublicationYear: rec.PublicationYear,
		Price:           domain.Price{UAH: rec.PriceUAH, EUR: rec.PriceEUR},
		Deleted:         rec.Deleted,
	}
}

// comparators order books by a sort field; missing values sort last in both directions.
var comparators = map[domain.SortField]func(a, b domain.Book, desc bool) int{
	domain.SortByID: func(a, b domain.Book, desc bool) int {
		return directed(cmp.Compare(a.ID, b.ID), desc)
	},
	domain.SortByISBN: func(a, b domain.Book, desc bool) int {
		return directed(strings.Compare(a.ISBN, b.ISBN), desc)
	},
	domain.SortByTitle: func(a, b domain.Book, desc bool) int {
		return directed(strings.Compare(a.Title, b.Title), desc)
	},
	domain.SortByAuthor: func(a, b domain.Book, desc bool) int {
		return nullsLast(a.Author == nil, b.Author == nil, func() int {
			return directed(strings.Compare(*a.Author, *b.Author), desc)
		})
	},
	domain.SortByPublicationYear: func(a, b domain.Book, desc bool) int {
		return nullsLast(a.PublicationYear == nil, b.PublicationYear == nil, func() int {
			return directed(cmp.Compare(*a.PublicationYear, *b.PublicationYear), desc)
		})
	},
	domain.SortByPrice: func(a, b domain.Book, desc bool) int {
		return nullsLast(!a.Price.UAH.Valid, !b.Price.UAH.Valid, func() int {
			return directed(a.Price.UAH.Decimal.Cmp(b.Price.UAH.Decimal), desc)
		})
	},
}

func directed(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}

func nullsLast(aNull, bNull bool, compare func() int) int {
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}
	return compare()
}

func NewBookRepository(db *badger.DB) (*BookRepository, error) {
	seq, err := db.GetSequence([]byte(bookSeqKey), 100)
	if err != nil {
		return nil, fmt.Errorf("failed to init book sequence: %w", err)
	}
	return &BookRepository{db: db, seq: seq}, nil
}
