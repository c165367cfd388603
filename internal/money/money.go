// Package money handles comma-decimal monetary strings as the user types
// them, and converts them to numeric values for aggregation.
//
// Parsing goes through float64 on purpose: the displayed behavior of the
// tracker, including its binary floating-point drift, is preserved as-is.
// Exact-cents arithmetic is explicitly out of scope.
package money

import (
	"strconv"
	"strings"
)

// Normalize rewrites raw user input into the canonical "{whole},{fraction}"
// form with exactly two fraction digits. Every character that is not a digit
// or a comma is stripped; only the first comma is kept as the decimal
// separator, later commas are dropped. Missing fraction digits are
// zero-filled, extra digits are truncated, never rounded. Empty input
// yields "0,00".
func Normalize(raw string) string {
	var b strings.Builder
	seenComma := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' && !seenComma:
			b.WriteRune(r)
			seenComma = true
		}
	}

	whole, fraction, _ := strings.Cut(b.String(), ",")
	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	switch {
	case len(fraction) > 2:
		fraction = fraction[:2]
	case len(fraction) < 2:
		fraction = fraction + strings.Repeat("0", 2-len(fraction))
	}
	return whole + "," + fraction
}

// ParseNumeric converts a monetary value into a float64 for aggregation.
// Numbers pass through unchanged, nil and empty strings become 0, and
// strings are parsed with the first comma treated as the decimal separator.
// Unparseable input yields 0.
func ParseNumeric(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if n == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.Replace(n, ",", ".", 1), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// FormatBRL renders a numeric value as Brazilian currency with two decimals,
// e.g. 1234.5 -> "R$ 1.234,50".
func FormatBRL(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, fraction, _ := strings.Cut(s, ".")
	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + fraction
	if negative {
		out = "-" + out
	}
	return out
}
