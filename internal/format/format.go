// Package format renders report numbers and rounds them the way the
// report tables expect: half to even, thousands grouped with commas.
package format

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// exact is the full decimal expansion of v's binary value, so 2.675 is
// 2.67499999999999982236431605997495353221893310546875 and rounds down.
// v must be finite.
func exact(v float64) decimal.Decimal {
	f := new(big.Float).SetFloat64(v)
	// The last mantissa bit is 2^(exp-53), which needs 53-exp decimals.
	digits := max(0, 53-f.MantExp(nil))
	return decimal.RequireFromString(f.Text('f', digits))
}

// special formats NaN and infinities.
func special(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "inf", true
	case math.IsInf(v, -1):
		return "-inf", true
	}
	return "", false
}

// Round rounds v to places decimals, half to even.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return exact(v).RoundBank(int32(places)).InexactFloat64()
}

// Number formats v with places decimals and comma thousands separators,
// e.g. 1234567.891 -> "1,234,567.89".
func Number(v float64, places int) string {
	if s, ok := special(v); ok {
		return s
	}
	s := exact(v).StringFixedBank(int32(places))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Thousands formats v/1000 with places decimals.
func Thousands(v float64, places int) string {
	return Number(v/1000, places)
}

// Percent formats a fraction as a percentage without the sign, e.g.
// Percent(0.125, 1) -> "12.5".
func Percent(fraction float64, places int) string {
	return Number(fraction*100, places)
}

// Plain formats v with places decimals and no grouping, for formulas.
func Plain(v float64, places int) string {
	if s, ok := special(v); ok {
		return s
	}
	return exact(v).StringFixedBank(int32(places))
}
