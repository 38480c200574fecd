package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateRepository struct{ mock.Mock }

func (m *MockRateRepository) Current(ctx context.Context) (domain.Rate, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.Rate)
	return r, args.Error(1)
}

func (m *MockRateRepository) Replace(ctx context.Context, value decimal.Decimal, capturedAt time.Time) error {
	args := m.Called(ctx, value, capturedAt)
	return args.Error(0)
}

func TestCachedRateRepository_ReadsThroughOnce(t *testing.T) {
	repo := new(MockRateRepository)
	c, err := NewCachedRateRepository(repo, 16)
	require.NoError(t, err)
	defer c.Close()

	rate := domain.Rate{Value: decimal.RequireFromString("44.10"), CapturedAt: time.Now()}
	repo.On("Current", mock.Anything).Return(rate, nil).Once()

	got, err := c.Current(context.Background())
	require.NoError(t, err)
	require.True(t, rate.Value.Equal(got.Value))
	c.cache.Wait()

	got, err = c.Current(context.Background())
	require.NoError(t, err)
	require.True(t, rate.Value.Equal(got.Value))
	repo.AssertExpectations(t)
}

func TestCachedRateRepository_NotFoundIsNotCached(t *testing.T) {
	repo := new(MockRateRepository)
	c, err := NewCachedRateRepository(repo, 16)
	require.NoError(t, err)
	defer c.Close()

	repo.On("Current", mock.Anything).Return(domain.Rate{}, domain.ErrRateNotFound).Twice()

	_, err = c.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrRateNotFound)
	c.cache.Wait()
	_, err = c.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrRateNotFound)
	repo.AssertExpectations(t)
}

func TestCachedRateRepository_ReplaceRefreshesEntry(t *testing.T) {
	repo := new(MockRateRepository)
	c, err := NewCachedRateRepository(repo, 16)
	require.NoError(t, err)
	defer c.Close()

	old := domain.Rate{Value: decimal.RequireFromString("44.10"), CapturedAt: time.Now().Add(-time.Hour)}
	repo.On("Current", mock.Anything).Return(old, nil).Once()
	_, err = c.Current(context.Background())
	require.NoError(t, err)
	c.cache.Wait()

	newValue := decimal.RequireFromString("45.00")
	capturedAt := time.Now()
	repo.On("Replace", mock.Anything, newValue, capturedAt).Return(nil).Once()
	require.NoError(t, c.Replace(context.Background(), newValue, capturedAt))

	got, err := c.Current(context.Background())
	require.NoError(t, err)
	require.True(t, newValue.Equal(got.Value))
	repo.AssertExpectations(t)
}

func TestCachedRateRepository_ReplaceErrorDropsEntry(t *testing.T) {
	repo := new(MockRateRepository)
	c, err := NewCachedRateRepository(repo, 16)
	require.NoError(t, err)
	defer c.Close()

	old := domain.Rate{Value: decimal.RequireFromString("44.10")}
	repo.On("Current", mock.Anything).Return(old, nil).Twice()
	_, err = c.Current(context.Background())
	require.NoError(t, err)
	c.cache.Wait()

	value := decimal.RequireFromString("45.00")
	repo.On("Replace", mock.Anything, value, mock.Anything).Return(errors.New("disk full")).Once()
	require.Error(t, c.Replace(context.Background(), value, time.Now()))

	got, err := c.Current(context.Background())
	require.NoError(t, err)
	require.True(t, old.Value.Equal(got.Value))
	repo.AssertExpectations(t)
}
