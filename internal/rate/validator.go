package rate

import (
	"errors"
	"strings"

	"bookcatalog/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrRateRequired  = errors.New("rate is required")
	ErrRateMalformed = errors.New("rate must be a decimal number")
)

// ParseRate validates a manually supplied rate such as "41.50".
func ParseRate(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrRateRequired
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrRateMalformed
	}
	if !value.IsPositive() {
		return decimal.Zero, domain.ErrInvalidRate
	}
	return value, nil
}
