package decimal

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

var (
	// GSTRate is the Australian GST rate (10%)
	GSTRate = decimal.New(1, -1)

	// gstInclusiveDivisor converts a GST-inclusive price to its GST-exclusive part
	gstInclusiveDivisor = decimal.New(11, -1)
)

// FromFloatChecked creates decimal from float, rejecting NaN and infinities
func FromFloatChecked(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Zero, fmt.Errorf("non-finite amount: %v", v)
	}
	return decimal.NewFromFloat(v), nil
}

// GSTOn computes GST added on top of a GST-exclusive amount: amount * 10%
func GSTOn(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(GSTRate)
}

// ExcludingGST returns the GST-exclusive part of a GST-inclusive amount: amount / 1.1
func ExcludingGST(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(gstInclusiveDivisor)
}

// GSTIncluded returns the GST contained in a GST-inclusive amount (amount / 11).
// Computed as amount - amount/1.1 so that the two parts always add back to amount.
func GSTIncluded(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(ExcludingGST(amount))
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// RoundCents rounds half away from zero to whole cents
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatCurrency renders an amount as $D,DDD.DD.
// The dollar sign is always used; the currency code is a separate label.
// Negative amounts render as -$D,DDD.DD.
func FormatCurrency(d decimal.Decimal) string {
	rounded := RoundCents(d)
	fixed := rounded.Abs().StringFixed(2)

	whole, cents := fixed, "00"
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		whole, cents = fixed[:idx], fixed[idx+1:]
	}

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(whole))
	b.WriteByte('.')
	b.WriteString(cents)
	return b.String()
}

// FormatAmount renders an amount with two decimals and no grouping or symbol
func FormatAmount(d decimal.Decimal) string {
	return RoundCents(d).StringFixed(2)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
