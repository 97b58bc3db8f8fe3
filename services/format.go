package services

import (
	"fmt"
	"strings"
)

// FormatMoney formats an amount with thousand grouping and exactly two
// decimal places, followed by the currency code when one is given.
// Example: FormatMoney(1234567.5, "RUB") → "1,234,567.50 RUB".
func FormatMoney(amount float64, currency string) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	if currency != "" {
		result += " " + currency
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
