package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/adapters"
	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const fetchTimeout = 15 * time.Second

type Service struct {
	coordinator *Coordinator
	rates       adapters.RateRepository
	client      adapters.RateClient
	fallback    decimal.Decimal
}

// Current returns domain.ErrRateNotFound when no rate is stored.
// It reads in shared mode, so it never observes a rate that is still being applied.
func (s *Service) Current(ctx context.Context) (domain.Rate, error) {
	var current domain.Rate
	err := s.coordinator.WithRate(ctx, func(_ context.Context, rate *domain.Rate) error {
		if rate == nil {
			return domain.ErrRateNotFound
		}
		current = *rate
		return nil
	})
	return current, err
}

// FetchFromSource asks NBU for the rate without storing it. Every failure is logged and reported as ok == false.
func (s *Service) FetchFromSource(ctx context.Context) (decimal.Decimal, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	value, err := s.client.GetRate(reqCtx)
	if err != nil {
		logrus.WithError(err).Warn("Failed to fetch rate from NBU")
		return decimal.Zero, false
	}
	return value, true
}

// Update stores value and recalculates all books, returning how many were rewritten.
func (s *Service) Update(ctx context.Context, value decimal.Decimal) (int, error) {
	recalculated, err := s.coordinator.Apply(ctx, value)
	if err != nil {
		return recalculated, err
	}
	logrus.WithFields(logrus.Fields{"rate": value.String(), "recalculated": recalculated}).Info("Rate updated")
	return recalculated, nil
}

// Refresh fetches the NBU rate and applies it. When NBU is unavailable the stored rate is kept and updated is false.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	value, ok := s.FetchFromSource(ctx)
	if !ok {
		return false, nil
	}
	if _, err := s.Update(ctx, value); err != nil {
		return false, err
	}
	return true, nil
}

// Initialize makes sure a rate exists at startup: it keeps a stored one, otherwise fetches from NBU
// and seeds the fallback rate when that fails.
func (s *Service) Initialize(ctx context.Context) error {
	current, err := s.rates.Current(ctx)
	if err == nil {
		logrus.WithField("rate", current.Value.String()).Info("Stored rate found, skipping initial fetch")
		return nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return fmt.Errorf("failed to read stored rate: %w", err)
	}

	value, ok := s.FetchFromSource(ctx)
	if !ok {
		logrus.WithField("rate", s.fallback.String()).Warn("NBU unavailable on startup, seeding fallback rate")
		value = s.fallback
	}
	if _, err = s.Update(ctx, value); err != nil {
		return fmt.Errorf("failed to seed initial rate: %w", err)
	}
	return nil
}

func NewService(coordinator *Coordinator, rates adapters.RateRepository, client adapters.RateClient, fallback decimal.Decimal) *Service {
	return &Service{coordinator: coordinator, rates: rates, client: client, fallback: fallback}
}
