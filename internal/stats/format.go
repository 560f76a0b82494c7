package stats

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency renders a dollar amount with comma thousands separators
// and two decimal places, e.g. -1234567.8 -> "-$1,234,567.80".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String() + "." + decPart
}

// FormatPercent renders a percentage with two decimal places.
func FormatPercent(value float64) string {
	if math.IsInf(value, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f%%", value)
}

// FormatRatio renders a dimensionless ratio, with +Inf shown as the
// infinity symbol so no-loss collections display sensibly.
func FormatRatio(value float64) string {
	if math.IsInf(value, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", value)
}
