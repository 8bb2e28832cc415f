package decimal_test

import (
	"math"
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/au-invoice/internal/decimal"
)

func TestFromFloatChecked(t *testing.T) {
	d, err := decimal.FromFloatChecked(12.5)
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("12.5")))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := decimal.FromFloatChecked(v)
		assert.Error(t, err, "value %v", v)
	}
}

func TestGSTOn(t *testing.T) {
	assert.True(t, decimal.GSTOn(dec.NewFromInt(100)).Equal(dec.NewFromInt(10)))
	assert.True(t, decimal.GSTOn(dec.RequireFromString("19.95")).Equal(dec.RequireFromString("1.995")))
	assert.True(t, decimal.GSTOn(dec.Zero).IsZero())
}

func TestExcludingGST(t *testing.T) {
	assert.True(t, decimal.ExcludingGST(dec.NewFromInt(110)).Equal(dec.NewFromInt(100)))
	assert.Equal(t, "90.91", decimal.RoundCents(decimal.ExcludingGST(dec.NewFromInt(100))).StringFixed(2))
}

func TestGSTIncluded(t *testing.T) {
	assert.True(t, decimal.GSTIncluded(dec.NewFromInt(110)).Equal(dec.NewFromInt(10)))

	// Parts always add back to the gross amount
	gross := dec.NewFromInt(100)
	sum := decimal.ExcludingGST(gross).Add(decimal.GSTIncluded(gross))
	assert.True(t, sum.Equal(gross), "got %s", sum)
	assert.Equal(t, "9.09", decimal.RoundCents(decimal.GSTIncluded(gross)).StringFixed(2))
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, decimal.IsNonNegative(dec.NewFromInt(1)))
	assert.True(t, decimal.IsNonNegative(dec.Zero))
	assert.False(t, decimal.IsNonNegative(dec.NewFromInt(-1)))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12345.67", "$12,345.67"},
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"999.999", "$1,000.00"},
		{"100.005", "$100.01"}, // half away from zero
		{"1234567.891", "$1,234,567.89"},
		{"123", "$123.00"},
		{"1000", "$1,000.00"},
		{"-1234.5", "-$1,234.50"},
		{"-0.001", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, decimal.FormatCurrency(dec.RequireFromString(tt.input)))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1234.50", decimal.FormatAmount(dec.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", decimal.FormatAmount(dec.Zero))
}
