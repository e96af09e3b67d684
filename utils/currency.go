package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyKES formats an amount as Kenyan Shillings for display.
// Example: 1300 -> "KSh 1,300"; 150.5 -> "KSh 150.50".
func FormatCurrencyKES(amount float64) string {
	whole := math.Floor(amount)
	cents := math.Round((amount - whole) * 100)

	integerStr := fmt.Sprintf("%.0f", whole)

	// Insert thousands separators
	var groups []string
	for i := len(integerStr); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerStr[start:i]}, groups...)
	}
	formatted := strings.Join(groups, ",")

	if cents > 0 {
		return fmt.Sprintf("KSh %s.%02.0f", formatted, cents)
	}
	return fmt.Sprintf("KSh %s", formatted)
}
