package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateScale is the number of fractional digits kept for fetched rates and converted prices.
const RateScale = 2

// Rate is the current EUR/UAH exchange rate: how many UAH one EUR costs.
type Rate struct {
	Value      decimal.Decimal
	CapturedAt time.Time
}

// Usable reports whether prices can be converted with the rate.
func (r Rate) Usable() bool {
	return r.Value.IsPositive()
}
