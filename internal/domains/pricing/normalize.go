// Package pricing implements the storefront money rules: normalization of
// heterogeneous price representations and the metre-versus-unit quote
// arithmetic shared by the cart and checkout contexts.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize converts a raw price string into a canonical decimal. Currency
// symbols, spaces, and any other non-numeric characters are discarded. The
// last '.' or ',' is taken as the decimal point; earlier separators are
// treated as grouping noise, so "1.234,56" and "1,234.56" both normalize to
// 1234.56. Anything unparseable resolves to zero, never an error.
func Normalize(raw string) decimal.Decimal {
	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			cleaned.WriteRune(r)
		}
	}
	s := cleaned.String()
	if last := strings.LastIndexAny(s, ".,"); last >= 0 {
		var rebuilt strings.Builder
		for i := 0; i < len(s); i++ {
			switch {
			case i == last:
				rebuilt.WriteByte('.')
			case s[i] == '.' || s[i] == ',':
				// grouping separator, drop
			default:
				rebuilt.WriteByte(s[i])
			}
		}
		s = rebuilt.String()
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if s == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// NormalizeFloat converts a numeric price into a canonical decimal,
// collapsing NaN and infinities to zero.
func NormalizeFloat(raw float64) decimal.Decimal {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(raw)
}
