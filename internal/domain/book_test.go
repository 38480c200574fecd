package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestConvertUAH_RoundsHalfUp(t *testing.T) {
	cases := []struct{ uah, rate, want string }{
		{"100.00", "25.00", "4"},
		{"300", "25", "12"},
		{"100", "3", "33.33"},
		{"200", "3", "66.67"},
		// 0.125 is exactly halfway
		{"1", "8", "0.13"},
		{"0.01", "44.10", "0"},
	}
	for _, tc := range cases {
		got := ConvertUAH(decimal.RequireFromString(tc.uah), decimal.RequireFromString(tc.rate))
		require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%s / %s = %s, want %s", tc.uah, tc.rate, got, tc.want)
	}
}

func TestNewPrice_WithoutRateLeavesEURNull(t *testing.T) {
	p := NewPrice(decimal.NewFromInt(100), nil)
	require.True(t, p.UAH.Valid)
	require.False(t, p.EUR.Valid)
}

func TestPrice_Recalculate(t *testing.T) {
	p := NewPrice(decimal.NewFromInt(300), &Rate{Value: decimal.NewFromInt(25)})
	require.True(t, p.EUR.Decimal.Equal(decimal.NewFromInt(12)))

	require.True(t, p.Recalculate(Rate{Value: decimal.NewFromInt(50)}))
	require.True(t, p.EUR.Decimal.Equal(decimal.NewFromInt(6)))

	// unusable rate keeps the last derived value
	require.False(t, p.Recalculate(Rate{Value: decimal.Zero}))
	require.True(t, p.EUR.Decimal.Equal(decimal.NewFromInt(6)))

	var unpriced Price
	require.False(t, unpriced.Recalculate(Rate{Value: decimal.NewFromInt(50)}))
	require.False(t, unpriced.EUR.Valid)
}

func TestValidUAH(t *testing.T) {
	for _, v := range []string{"100", "100.5", "100.50", "0.01", "100.0000"} {
		require.True(t, ValidUAH(decimal.RequireFromString(v)), v)
	}
	for _, v := range []string{"100.001", "100.00005", "0.005"} {
		require.False(t, ValidUAH(decimal.RequireFromString(v)), v)
	}
}
