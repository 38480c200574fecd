package postgres

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, isbn, title, author, publication_year, price_uah, price_eur, deleted`

// sortColumns maps sort fields to columns; only these are ever interpolated into queries.
var sortColumns = map[domain.SortField]string{
	domain.SortByID:              "id",
	domain.SortByISBN:            "isbn",
	domain.SortByTitle:           "title",
	domain.SortByAuthor:          "author",
	domain.SortByPublicationYear: "publication_year",
	domain.SortByPrice:           "price_uah",
}

type BookRepository struct {
	pool *pgxpool.Pool
}

func (r *BookRepository) ExistsActiveISBN(ctx context.Context, isbn string) (bool, error) {
	const q = `select exists(select 1 from books where isbn = $1 and deleted = false);`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, isbn).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check isbn %q: %w", isbn, err)
	}
	return exists, nil
}

func (r *BookRepository) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	const q = `
		insert into books (isbn, title, author, publication_year, price_uah, price_eur, deleted)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning id;
	`

	err := r.pool.QueryRow(ctx, q,
		book.ISBN,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Price.UAH,
		book.Price.EUR,
		book.Deleted,
	).Scan(&book.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Book{}, domain.ErrISBNConflict
		}
		return domain.Book{}, fmt.Errorf("failed to insert book %q: %w", book.ISBN, err)
	}
	return book, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id int64) (domain.Book, error) {
	q := `select ` + bookColumns + ` from books where id = $1 and deleted = false;`
	return r.findOne(ctx, q, id)
}

func (r *BookRepository) FindByIDIncludingDeleted(ctx context.Context, id int64) (domain.Book, error) {
	q := `select ` + bookColumns + ` from books where id = $1;`
	return r.findOne(ctx, q, id)
}

func (r *BookRepository) findOne(ctx context.Context, q string, id int64) (domain.Book, error) {
	book, err := scanBook(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Book{}, domain.ErrBookNotFound
		}
		return domain.Book{}, fmt.Errorf("failed to select book %d: %w", id, err)
	}
	return book, nil
}

func (r *BookRepository) FindActive(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	column, ok := sortColumns[req.Sort.Field]
	if !ok {
		return domain.Page{}, fmt.Errorf("%w: unsupported sort field %q", domain.ErrInvalidPage, req.Sort.Field)
	}
	direction := "asc"
	if req.Sort.Desc {
		direction = "desc"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from books where deleted = false;`).Scan(&total); err != nil {
		return domain.Page{}, fmt.Errorf("failed to count books: %w", err)
	}

	// id is appended as a tiebreaker so pages stay stable for non-unique columns
	q := fmt.Sprintf(
		`select %s from books where deleted = false order by %s %s nulls last, id asc limit $1 offset $2;`,
		bookColumns, column, direction,
	)
	rows, err := r.pool.Query(ctx, q, req.Size, req.Offset())
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to query books page: %w", err)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Page{Books: books, Total: total}, nil
}

func (r *BookRepository) Save(ctx context.Context, book domain.Book) error {
	const q = `
		update books
		set isbn = $2, title = $3, author = $4, publication_year = $5, price_uah = $6, price_eur = $7, deleted = $8
		where id = $1 and deleted = false;
	`

	tag, err := r.pool.Exec(ctx, q,
		book.ID,
		book.ISBN,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Price.UAH,
		book.Price.EUR,
		book.Deleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrISBNConflict
		}
		return fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) SavePrice(ctx context.Context, id int64, price domain.Price) error {
	const q = `update books set price_uah = $2, price_eur = $3 where id = $1;`

	tag, err := r.pool.Exec(ctx, q, id, price.UAH, price.EUR)
	if err != nil {
		return fmt.Errorf("failed to update price of book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `update books set deleted = true where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) ListAll(ctx context.Context) ([]domain.Book, error) {
	q := `select ` + bookColumns + ` from books order by id;`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query all books: %w", err)
	}
	return collectBooks(rows)
}

func collectBooks(rows pgx.Rows) ([]domain.Book, error) {
	defer rows.Close()

	books := make([]domain.Book, 0, 32)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}
	return books, nil
}

func scanBook(row pgx.Row) (domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID,
		&b.ISBN,
		&b.Title,
		&b.Author,
		&b.PublicationYear,
		&b.Price.UAH,
		&b.Price.EUR,
		&b.Deleted,
	)
	return b, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}
