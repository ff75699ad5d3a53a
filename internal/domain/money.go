package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with exactly two decimal places for display
// or PDF output. Rounding happens here and only here; callers must never feed
// the formatted value back into a calculation.
func FormatMoney(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatInvoiceNumber renders a sequence number zero-padded to a minimum
// width of three digits: 7 -> "007", 1234 -> "1234".
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("%03d", n)
}

// ParseAmount coerces a form field to a number. Anything unparseable (or a
// NaN/Inf) becomes 0 rather than an error; numeric entry mistakes must never
// interrupt editing.
func ParseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
