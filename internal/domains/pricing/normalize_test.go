package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_StripsCurrencyNoise(t *testing.T) {
	cases := map[string]string{
		"1200":          "1200",
		"1 200 DA":      "1200",
		"  500.50 ":     "500.5",
		"120,5":         "120.5",
		"1.234,56":      "1234.56",
		"1,234.56":      "1234.56",
		"1.234.567,89":  "1234567.89",
		"DA 2.500":      "2.5",
		"€1,99":         "1.99",
		"":              "0",
		"gratuit":       "0",
		"...":           "0",
		",":             "0",
		".5":            "0.5",
		"5.":            "5",
	}
	for raw, want := range cases {
		require.Equal(t, want, Normalize(raw).String(), "input %q", raw)
	}
}

func TestNormalize_TrimEquivalence(t *testing.T) {
	require.True(t, Normalize("  1 299,00 DA ").Equal(Normalize("1299,00")))
	require.True(t, Normalize("$500").Equal(Normalize("500")))
}

func TestNormalizeFloat(t *testing.T) {
	require.Equal(t, "499.99", NormalizeFloat(499.99).String())
	require.True(t, NormalizeFloat(math.NaN()).IsZero())
	require.True(t, NormalizeFloat(math.Inf(1)).IsZero())
	require.True(t, NormalizeFloat(math.Inf(-1)).IsZero())
}
