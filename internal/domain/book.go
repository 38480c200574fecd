package domain

import "github.com/shopspring/decimal"

type Book struct {
	ID              int64
	ISBN            string
	Title           string
	Author          *string
	PublicationYear *int
	Price           Price
	Deleted         bool
}

// PriceScale is the number of fractional digits a UAH amount may carry.
const PriceScale = 2

// Price keeps the user supplied UAH amount and the EUR amount derived from it.
// EUR stays invalid (null) while no rate is known.
type Price struct {
	UAH decimal.NullDecimal
	EUR decimal.NullDecimal
}

// NewPrice builds a price for the given UAH amount, converting it with rate when one is available.
func NewPrice(uah decimal.Decimal, rate *Rate) Price {
	p := Price{UAH: decimal.NewNullDecimal(uah)}
	if rate != nil {
		p.Recalculate(*rate)
	}
	return p
}

// Recalculate derives EUR from UAH with the given rate.
// It returns false and leaves the price untouched when there is nothing to convert.
func (p *Price) Recalculate(rate Rate) bool {
	if !p.UAH.Valid || !rate.Usable() {
		return false
	}
	p.EUR = decimal.NewNullDecimal(ConvertUAH(p.UAH.Decimal, rate.Value))
	return true
}

// ValidUAH reports whether uah fits PriceScale without rounding.
func ValidUAH(uah decimal.Decimal) bool {
	return uah.Equal(uah.Truncate(PriceScale))
}

// ConvertUAH returns uah / rate rounded half away from zero to RateScale places.
func ConvertUAH(uah, rate decimal.Decimal) decimal.Decimal {
	return uah.DivRound(rate, RateScale)
}
