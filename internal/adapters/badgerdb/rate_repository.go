package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/domain"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
)

var currentRateKey = []byte("rate:current")

type rateRecord struct {
	Value      decimal.Decimal `json:"value"`
	CapturedAt time.Time       `json:"captured_at"`
}

// RateRepository keeps the rate under a single key, so a write always replaces the previous value.
type RateRepository struct {
	db *badger.DB
}

func (r *RateRepository) Current(_ context.Context) (domain.Rate, error) {
	var rec rateRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(currentRateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Rate{}, domain.ErrRateNotFound
	}
	if err != nil {
		return domain.Rate{}, fmt.Errorf("failed to read current rate: %w", err)
	}
	return domain.Rate{Value: rec.Value, CapturedAt: rec.CapturedAt}, nil
}

func (r *RateRepository) Replace(_ context.Context, value decimal.Decimal, capturedAt time.Time) error {
	data, err := json.Marshal(rateRecord{Value: value, CapturedAt: capturedAt.UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal rate: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(currentRateKey, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store rate %s: %w", value, err)
	}
	return nil
}

func NewRateRepository(db *badger.DB) *RateRepository {
	return &RateRepository{db: db}
}
