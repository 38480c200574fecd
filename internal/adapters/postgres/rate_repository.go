package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

func (r *RateRepository) Current(ctx context.Context) (domain.Rate, error) {
	const q = `select rate, captured_at from rates order by captured_at desc, id desc limit 1;`

	var rate domain.Rate
	if err := r.pool.QueryRow(ctx, q).Scan(&rate.Value, &rate.CapturedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Rate{}, domain.ErrRateNotFound
		}
		return domain.Rate{}, fmt.Errorf("failed to select current rate: %w", err)
	}
	return rate, nil
}

// Replace deletes every stored rate and inserts the new one in a single transaction.
func (r *RateRepository) Replace(ctx context.Context, value decimal.Decimal, capturedAt time.Time) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `delete from rates;`); err != nil {
		return fmt.Errorf("failed to delete previous rates: %w", err)
	}
	if _, err = tx.Exec(ctx, `insert into rates (rate, captured_at) values ($1, $2);`, value, capturedAt); err != nil {
		return fmt.Errorf("failed to insert rate %s: %w", value, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
