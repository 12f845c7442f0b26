// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with its currency label and thousands separators.
// e.g., ("£", 1234.5) -> "£1,234.50", ("£", -0.51) -> "-£0.51"
func FormatMoney(currency string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + currency + fixed
	}
	return sign + currency + FormatNumber(n) + "." + frac
}

// FormatMeters formats a distance in whole metres.
// e.g., 4000 -> "4,000 m"
func FormatMeters(m float64) string {
	return FormatNumber(int64(m)) + " m"
}

// FormatMiles formats a distance in miles to two places.
func FormatMiles(mi float64) string {
	return fmt.Sprintf("%.2f mi", mi)
}

// FormatElapsed formats a fetch duration for progress output.
// e.g., 1.234s -> "1.2s", 85ms -> "85ms"
func FormatElapsed(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate formats a period boundary for display.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2 Jan 2006 15:04 MST")
}
