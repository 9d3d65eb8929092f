package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatAmount formats an amount with two decimals, a space as thousands
// separator and a comma as decimal mark, followed by the currency:
// 2908.717 -> "2 908,72 DT".
func FormatAmount(amount float64, currency string) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	s := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 8 + len(currency))
	if neg && cents != 0 {
		b.WriteByte('-')
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(' ')
		b.WriteString(s[i : i+3])
	}

	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))

	if currency != "" {
		b.WriteByte(' ')
		b.WriteString(currency)
	}
	return b.String()
}

// FormatArea formats a surface in m² with two decimals
func FormatArea(area float64) string {
	return strconv.FormatFloat(area, 'f', 2, 64) + " m²"
}

// FormatPercent drops trailing zeros: 10 -> "10%", 12.5 -> "12.5%"
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
