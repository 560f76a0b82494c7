package stats

import (
	"math"

	"pnl-journal/internal/models"
)

// annualization converts a daily figure to an annual one assuming 252
// trading days per year. Sharpe and Sortino share the convention so the
// two ratios stay comparable.
var annualization = math.Sqrt(252)

// SharpeRatio is the mean daily P&L over its population standard
// deviation (denominator N), annualized by sqrt(252). Returns 0 for an
// empty collection or a zero standard deviation.
func SharpeRatio(records []models.DayRecord) float64 {
	n := len(records)
	if n == 0 {
		return 0
	}
	mean := CumulativePL(records) / float64(n)
	var variance float64
	for _, r := range records {
		d := r.TotalPL - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / float64(n))
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev * annualization
}

// SortinoRatio is like SharpeRatio but penalizes only downside: the
// deviation sums squared deviations of days strictly below the mean while
// still dividing by the full sample size N.
// With no downside days it is +Inf when the mean is positive, else 0.
func SortinoRatio(records []models.DayRecord) float64 {
	n := len(records)
	if n == 0 {
		return 0
	}
	mean := CumulativePL(records) / float64(n)
	var downside float64
	var downsideCount int
	for _, r := range records {
		if r.TotalPL < mean {
			d := r.TotalPL - mean
			downside += d * d
			downsideCount++
		}
	}
	if downsideCount == 0 {
		if mean > 0 {
			return math.Inf(1)
		}
		return 0
	}
	downsideDev := math.Sqrt(downside / float64(n))
	return mean / downsideDev * annualization
}

// CalmarRatio is an annualized-return estimate (mean daily P&L times 252)
// over the max drawdown percent. With no drawdown it is +Inf when the
// annualized return is positive, else 0.
func CalmarRatio(records []models.DayRecord) float64 {
	n := len(records)
	if n == 0 {
		return 0
	}
	annualized := CumulativePL(records) / float64(n) * 252
	dd := MaxDrawdown(records)
	if dd == 0 {
		if annualized > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return annualized / dd
}
