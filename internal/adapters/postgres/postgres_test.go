package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"bookcatalog/internal/adapters/postgres"
	"bookcatalog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const migrationsDir = "../../platform/db/migrations"

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, resetDatabase(ctx, pool))

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return db.PingContext(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, migrationsDir))

	pgContainer = pg
	pgConnStr = dsn
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `truncate table books, rates restart identity cascade`); err != nil {
		return err
	}
	return nil
}

func newBook(isbn string, uah string) domain.Book {
	author := "Taras Shevchenko"
	year := 1840
	return domain.Book{
		ISBN:            isbn,
		Title:           "Kobzar",
		Author:          &author,
		PublicationYear: &year,
		Price:           domain.Price{UAH: decimal.NewNullDecimal(decimal.RequireFromString(uah))},
	}
}

// ---------- BookRepository tests ----------

func TestBookRepository_CreateAndFindByID(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	book := newBook("1234567890123", "100.00")
	book.Price.EUR = decimal.NewNullDecimal(decimal.RequireFromString("4.00"))

	created, err := repo.Create(ctx, book)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "1234567890123", got.ISBN)
	require.Equal(t, "Kobzar", got.Title)
	require.Equal(t, "Taras Shevchenko", *got.Author)
	require.Equal(t, 1840, *got.PublicationYear)
	require.True(t, got.Price.UAH.Decimal.Equal(decimal.RequireFromString("100")))
	require.True(t, got.Price.EUR.Valid)
	require.True(t, got.Price.EUR.Decimal.Equal(decimal.RequireFromString("4")))
	require.False(t, got.Deleted)
}

func TestBookRepository_Create_NullSecondaryStaysNull(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	book := newBook("123456789X", "50")
	book.Author = nil
	book.PublicationYear = nil

	created, err := repo.Create(ctx, book)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, got.Price.EUR.Valid)
	require.Nil(t, got.Author)
	require.Nil(t, got.PublicationYear)
}

func TestBookRepository_Create_DuplicateActiveISBN(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, newBook("1234567890123", "10"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBook("1234567890123", "20"))
	require.ErrorIs(t, err, domain.ErrISBNConflict)
}

func TestBookRepository_SoftDeletedISBNCanBeReused(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		b, err := repo.Create(ctx, newBook("1234567890123", "10"))
		require.NoError(t, err)
		b.Deleted = true
		require.NoError(t, repo.Save(ctx, b))
	}

	exists, err := repo.ExistsActiveISBN(ctx, "1234567890123")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = repo.Create(ctx, newBook("1234567890123", "10"))
	require.NoError(t, err)

	exists, err = repo.ExistsActiveISBN(ctx, "1234567890123")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestBookRepository_FindByID_SoftDeleted(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	b, err := repo.Create(ctx, newBook("1234567890123", "10"))
	require.NoError(t, err)
	b.Deleted = true
	require.NoError(t, repo.Save(ctx, b))

	_, err = repo.FindByID(ctx, b.ID)
	require.ErrorIs(t, err, domain.ErrBookNotFound)

	got, err := repo.FindByIDIncludingDeleted(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, got.Deleted)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].Deleted)
}

func TestBookRepository_SoftDelete(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	b, err := repo.Create(ctx, newBook("1234567890123", "10"))
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, b.ID))
	require.NoError(t, repo.SoftDelete(ctx, b.ID))
	require.ErrorIs(t, repo.SoftDelete(ctx, 404), domain.ErrBookNotFound)

	_, err = repo.FindByID(ctx, b.ID)
	require.ErrorIs(t, err, domain.ErrBookNotFound)

	exists, err := repo.ExistsActiveISBN(ctx, "1234567890123")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestBookRepository_SaveDoesNotRestoreDeleted(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	b, err := repo.Create(ctx, newBook("1234567890123", "100"))
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, b.ID))

	b.Title = "Renamed"
	require.ErrorIs(t, repo.Save(ctx, b), domain.ErrBookNotFound)

	got, err := repo.FindByIDIncludingDeleted(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, got.Deleted)
	require.NotEqual(t, "Renamed", got.Title)

	exists, err := repo.ExistsActiveISBN(ctx, b.ISBN)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestBookRepository_SavePrice(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	active, err := repo.Create(ctx, newBook("1234567890123", "100"))
	require.NoError(t, err)
	deleted, err := repo.Create(ctx, newBook("1111111111", "100"))
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	price := domain.Price{
		UAH: decimal.NewNullDecimal(decimal.RequireFromString("100")),
		EUR: decimal.NewNullDecimal(decimal.RequireFromString("2.50")),
	}
	require.NoError(t, repo.SavePrice(ctx, active.ID, price))
	require.NoError(t, repo.SavePrice(ctx, deleted.ID, price))
	require.ErrorIs(t, repo.SavePrice(ctx, 404, price), domain.ErrBookNotFound)

	got, err := repo.FindByID(ctx, active.ID)
	require.NoError(t, err)
	require.True(t, got.Price.EUR.Decimal.Equal(decimal.RequireFromString("2.5")))
	require.Equal(t, active.Title, got.Title)

	got, err = repo.FindByIDIncludingDeleted(ctx, deleted.ID)
	require.NoError(t, err)
	require.True(t, got.Deleted)
	require.True(t, got.Price.EUR.Decimal.Equal(decimal.RequireFromString("2.5")))

	exists, err := repo.ExistsActiveISBN(ctx, deleted.ISBN)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestBookRepository_FindByID_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)

	_, err := repo.FindByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookRepository_Save_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)

	b := newBook("1234567890123", "10")
	b.ID = 99
	err := repo.Save(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookRepository_Save_ISBNConflict(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, newBook("1111111111", "10"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newBook("2222222222", "10"))
	require.NoError(t, err)

	second.ISBN = "1111111111"
	err = repo.Save(ctx, second)
	require.ErrorIs(t, err, domain.ErrISBNConflict)
}

func TestBookRepository_FindActive_PagingAndSorting(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)
	ctx := context.Background()

	titles := []string{"Beta", "Alpha", "Gamma"}
	for i, title := range titles {
		b := newBook("123456789"+string(rune('0'+i)), "10")
		b.Title = title
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}
	deleted, err := repo.Create(ctx, newBook("9999999999", "10"))
	require.NoError(t, err)
	deleted.Deleted = true
	require.NoError(t, repo.Save(ctx, deleted))

	page, err := repo.FindActive(ctx, domain.PageRequest{Page: 0, Size: 2, Sort: domain.Sort{Field: domain.SortByTitle}})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	require.Len(t, page.Books, 2)
	require.Equal(t, "Alpha", page.Books[0].Title)
	require.Equal(t, "Beta", page.Books[1].Title)

	page, err = repo.FindActive(ctx, domain.PageRequest{Page: 1, Size: 2, Sort: domain.Sort{Field: domain.SortByTitle}})
	require.NoError(t, err)
	require.Len(t, page.Books, 1)
	require.Equal(t, "Gamma", page.Books[0].Title)

	page, err = repo.FindActive(ctx, domain.PageRequest{Page: 0, Size: 10, Sort: domain.Sort{Field: domain.SortByID, Desc: true}})
	require.NoError(t, err)
	require.Len(t, page.Books, 3)
	require.Equal(t, int64(3), page.Books[0].ID)
}

func TestBookRepository_FindActive_UnknownSortField(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewBookRepository(pool)

	_, err := repo.FindActive(context.Background(), domain.PageRequest{Size: 10, Sort: domain.Sort{Field: "deleted; drop table books"}})
	require.ErrorIs(t, err, domain.ErrInvalidPage)
}

// ---------- RateRepository tests ----------

func TestRateRepository_Current_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateRepository(pool)

	_, err := repo.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestRateRepository_Replace_KeepsSingleRow(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateRepository(pool)
	ctx := context.Background()

	first := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	require.NoError(t, repo.Replace(ctx, decimal.RequireFromString("44.10"), first))
	require.NoError(t, repo.Replace(ctx, decimal.RequireFromString("44.25"), second))
	require.NoError(t, repo.Replace(ctx, decimal.RequireFromString("44.25"), second))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from rates`).Scan(&count))
	require.Equal(t, 1, count)

	rate, err := repo.Current(ctx)
	require.NoError(t, err)
	require.True(t, rate.Value.Equal(decimal.RequireFromString("44.25")))
	require.True(t, rate.CapturedAt.Equal(second))
}

func TestRateRepository_Current_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewRateRepository(pool)

	// Use a canceled context to force an error path distinct from ErrRateNotFound.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Current(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrRateNotFound)
}
