// Package format renders money and counts for receipts and the dashboard.
package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency renders an amount of US cents as dollars, dropping trailing
// zero fraction digits: 1050 -> "$10.5", 100000 -> "$1,000".
func Currency(cents int64) string {
	return Dollars(decimal.New(cents, -2))
}

// Dollars renders a dollar amount rounded to cents.
func Dollars(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	s := amount.Round(2).String()
	whole, frac, _ := strings.Cut(s, ".")
	n, _ := strconv.ParseInt(whole, 10, 64)

	out := sign + "$" + Number(n)
	if frac != "" {
		out += "." + frac
	}
	return out
}

// Number renders n with comma thousands separators.
func Number(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
