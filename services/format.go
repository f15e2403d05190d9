package services

import (
	"fmt"
	"strings"
)

// FormatEUR formats a float64 amount in French euro notation: digits grouped
// in thousands with non-breaking spaces, a comma as decimal separator and a
// trailing € sign (e.g. 1 234 567,89 €). The result always carries exactly
// 2 decimal places.
func FormatEUR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := applyThousandsGrouping(intPart) + "," + decPart + " €"
	if negative {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts non-breaking spaces every 3 digits from the
// right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + " " + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + " " + result
}

// FormatQty returns a display string for a quantity: whole numbers without
// decimals, fractional values with 2 decimal places.
func FormatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
