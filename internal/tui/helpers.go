package tui

import (
	"fmt"
	"strings"

	"github.com/andy/billcraft/internal/domain"
)

// formatAmount renders a monetary value with its currency code, e.g. "AUD 1,234.56"
func formatAmount(currency string, amount float64) string {
	s := domain.FormatMoney(amount)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	// Add commas to the integer part
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	sign := ""
	if negative {
		sign = "-"
	}
	if currency == "" {
		return sign + string(result) + decPart
	}
	return fmt.Sprintf("%s %s%s%s", currency, sign, string(result), decPart)
}

// formatQty renders a quantity without trailing decimal noise
func formatQty(q float64) string {
	s := fmt.Sprintf("%.2f", q)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
