package stats

import (
	"math"

	"pnl-journal/internal/models"
)

// DefaultWindow is the trailing-window size used by RollingMetrics and
// VolatilitySeries when the caller passes a non-positive window.
const DefaultWindow = 20

// RollingPoint is one step of the rolling-metrics series.
type RollingPoint struct {
	Date          string  `json:"date"`
	CumulativePL  float64 `json:"cumulativePL"`
	WindowAvgPL   float64 `json:"windowAvgPL"`
	WindowWinRate float64 `json:"windowWinRate"`
}

// DrawdownPoint is one step of the drawdown series.
type DrawdownPoint struct {
	Date       string  `json:"date"`
	Drawdown   float64 `json:"drawdown"`
	Underwater float64 `json:"underwater"`
}

// VolatilityPoint is one step of the rolling-volatility series.
type VolatilityPoint struct {
	Date       string  `json:"date"`
	Volatility float64 `json:"volatility"`
}

// RollingMetrics walks records chronologically and emits, for every
// position, the cumulative P&L to date plus the average P&L and win rate
// over the trailing window. The window is clipped at the start of the
// series, so early points average over fewer days.
func RollingMetrics(records []models.DayRecord, window int) []RollingPoint {
	if window <= 0 {
		window = DefaultWindow
	}
	sorted := SortByDay(records)
	out := make([]RollingPoint, 0, len(sorted))

	var cumulative float64
	for i, r := range sorted {
		cumulative += r.TotalPL

		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var sum float64
		var wins, traded int
		for _, w := range sorted[start : i+1] {
			sum += w.TotalPL
			if w.IsTradingDay() {
				traded++
				if w.TotalPL > 0 {
					wins++
				}
			}
		}
		p := RollingPoint{
			Date:         r.ID,
			CumulativePL: cumulative,
			WindowAvgPL:  sum / float64(i+1-start),
		}
		if traded > 0 {
			p.WindowWinRate = float64(wins) / float64(traded) * 100
		}
		out = append(out, p)
	}
	return out
}

// DrawdownSeries emits the per-record drawdown percentage and underwater
// dollar amount (cumulative minus peak, zero or negative) using the same
// peak tracking as MaxDrawdown. Unlike MaxDrawdown the percentage has no
// max(peak,1) floor: it is 0 whenever the peak is not positive, since the
// peak is used directly as the divisor.
func DrawdownSeries(records []models.DayRecord) []DrawdownPoint {
	sorted := SortByDay(records)
	out := make([]DrawdownPoint, 0, len(sorted))

	var cumulative, peak float64
	for _, r := range sorted {
		cumulative += r.TotalPL
		if cumulative > peak {
			peak = cumulative
		}
		p := DrawdownPoint{Date: r.ID, Underwater: cumulative - peak}
		if peak > 0 {
			p.Drawdown = (peak - cumulative) / peak * 100
		}
		out = append(out, p)
	}
	return out
}

// VolatilitySeries is the rolling population standard deviation of daily
// P&L over the trailing window, annualized by sqrt(252). Points are only
// emitted once a full window is available; there are no leading partial
// windows.
func VolatilitySeries(records []models.DayRecord, window int) []VolatilityPoint {
	if window <= 0 {
		window = DefaultWindow
	}
	sorted := SortByDay(records)
	if len(sorted) < window {
		return []VolatilityPoint{}
	}
	out := make([]VolatilityPoint, 0, len(sorted)-window+1)
	for i := window - 1; i < len(sorted); i++ {
		win := sorted[i-window+1 : i+1]
		var sum float64
		for _, w := range win {
			sum += w.TotalPL
		}
		mean := sum / float64(window)
		var variance float64
		for _, w := range win {
			d := w.TotalPL - mean
			variance += d * d
		}
		out = append(out, VolatilityPoint{
			Date:       sorted[i].ID,
			Volatility: math.Sqrt(variance/float64(window)) * annualization,
		})
	}
	return out
}
