package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
)

// maxBodyBytes caps how much of the NBU response is read.
const maxBodyBytes = 1 << 20

var (
	ErrEmptyResponse = errors.New("nbu returned no records")
	ErrMissingRate   = errors.New("nbu record has no rate")
)

// NBUClient reads the official EUR/UAH rate from the National Bank of Ukraine statistics API.
type NBUClient struct {
	http *http.Client
	url  string
}

type nbuRecord struct {
	Rate         *decimal.Decimal `json:"rate"`
	Currency     string           `json:"cc"`
	ExchangeDate string           `json:"exchangedate"`
}

// GetRate returns the first record's rate rounded half away from zero to two places.
func (c *NBUClient) GetRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create nbu request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to execute nbu request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, fmt.Errorf("unexpected status code %d from nbu: %s", resp.StatusCode, resp.Status)
	}

	var records []nbuRecord
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&records); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode nbu response: %w", err)
	}
	if len(records) == 0 {
		return decimal.Zero, ErrEmptyResponse
	}
	if records[0].Rate == nil {
		return decimal.Zero, ErrMissingRate
	}

	rate := records[0].Rate.Round(domain.RateScale)
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("nbu returned non-positive rate %s", rate)
	}
	return rate, nil
}

func NewNBUClient(httpClient *http.Client, url string) *NBUClient {
	return &NBUClient{http: httpClient, url: url}
}
