package stats

import (
	"math"
	"time"

	"pnl-journal/internal/models"
)

// CumulativePL sums TotalPL over all records. Order-independent.
func CumulativePL(records []models.DayRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.TotalPL
	}
	return sum
}

// WinRate is the percentage (0-100) of trading days with positive P&L.
// Days with zero P&L are not trading days and are excluded from the
// denominator. Returns 0 when there are no trading days.
func WinRate(records []models.DayRecord) float64 {
	var wins, tradingDays int
	for _, r := range records {
		if !r.IsTradingDay() {
			continue
		}
		tradingDays++
		if r.TotalPL > 0 {
			wins++
		}
	}
	if tradingDays == 0 {
		return 0
	}
	return float64(wins) / float64(tradingDays) * 100
}

// AvgReturnPerTrade is cumulative P&L divided by the total stored trade
// count. Returns 0 when no trades were recorded.
func AvgReturnPerTrade(records []models.DayRecord) float64 {
	var trades int
	for _, r := range records {
		trades += r.NumberOfTrades
	}
	if trades == 0 {
		return 0
	}
	return CumulativePL(records) / float64(trades)
}

// MaxDrawdown walks records chronologically, tracking the running peak of
// cumulative P&L, and returns the largest peak-to-trough decline as a
// percentage of the peak.
//
// The denominator is max(peak, 1): when the peak is zero or negative early
// in the series this is a floor rather than a true percentage, and is kept
// exactly as-is for compatibility with historical reports.
func MaxDrawdown(records []models.DayRecord) float64 {
	var cumulative, peak, maxDD float64
	for _, r := range SortByDay(records) {
		cumulative += r.TotalPL
		if cumulative > peak {
			peak = cumulative
		}
		dd := (peak - cumulative) / math.Max(peak, 1) * 100
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// ProfitFactor is gross profit divided by gross loss magnitude. With no
// losses it is +Inf when there is any profit, else 0.
func ProfitFactor(records []models.DayRecord) float64 {
	var profit, loss float64
	for _, r := range records {
		if r.TotalPL > 0 {
			profit += r.TotalPL
		} else if r.TotalPL < 0 {
			loss += -r.TotalPL
		}
	}
	if loss == 0 {
		if profit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return profit / loss
}

// winLossAverages returns the mean winning day, the mean loss magnitude,
// and the win/loss fractions of trading days. Zero-P&L days are excluded
// throughout, so winRate+lossRate is 1 whenever any trading day exists.
func winLossAverages(records []models.DayRecord) (avgWin, avgLoss, winRate, lossRate float64) {
	var winSum, lossSum float64
	var wins, losses int
	for _, r := range records {
		if r.TotalPL > 0 {
			winSum += r.TotalPL
			wins++
		} else if r.TotalPL < 0 {
			lossSum += -r.TotalPL
			losses++
		}
	}
	if wins > 0 {
		avgWin = winSum / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}
	if tradingDays := wins + losses; tradingDays > 0 {
		winRate = float64(wins) / float64(tradingDays)
		lossRate = float64(losses) / float64(tradingDays)
	}
	return avgWin, avgLoss, winRate, lossRate
}

// Expectancy is the expected value of a trading day:
// avgWin*winRate - avgLoss*lossRate, with avgLoss as a loss magnitude.
func Expectancy(records []models.DayRecord) float64 {
	avgWin, avgLoss, winRate, lossRate := winLossAverages(records)
	return avgWin*winRate - avgLoss*lossRate
}

// AvgWinLossRatio is the mean win divided by the mean loss magnitude.
// +Inf when there are wins but no losses, else 0 when there are no losses.
func AvgWinLossRatio(records []models.DayRecord) float64 {
	avgWin, avgLoss, _, _ := winLossAverages(records)
	if avgLoss == 0 {
		if avgWin > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return avgWin / avgLoss
}

// LargestWin is the biggest positive day P&L, or 0 when there are no wins.
func LargestWin(records []models.DayRecord) float64 {
	var largest float64
	for _, r := range records {
		if r.TotalPL > largest {
			largest = r.TotalPL
		}
	}
	return largest
}

// LargestLoss is the most negative day P&L, or 0 when there are no losses.
func LargestLoss(records []models.DayRecord) float64 {
	var largest float64
	for _, r := range records {
		if r.TotalPL < largest {
			largest = r.TotalPL
		}
	}
	return largest
}

// RecoveryFactor is net profit divided by max drawdown percent. With no
// drawdown it is +Inf when net profit is positive, else 0.
func RecoveryFactor(records []models.DayRecord) float64 {
	net := CumulativePL(records)
	dd := MaxDrawdown(records)
	if dd == 0 {
		if net > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return net / dd
}

// AvgTradesPerDay is the mean stored trade count over weekday records
// (Monday through Friday, local time). Returns 0 with no weekday records.
func AvgTradesPerDay(records []models.DayRecord) float64 {
	var trades, days int
	for _, r := range records {
		wd := r.Day().Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		trades += r.NumberOfTrades
		days++
	}
	if days == 0 {
		return 0
	}
	return float64(trades) / float64(days)
}

// FallingKnifeWinRate is the win rate restricted to trading days on which
// no falling-knife event was recorded.
func FallingKnifeWinRate(records []models.DayRecord) float64 {
	clean := make([]models.DayRecord, 0, len(records))
	for _, r := range records {
		if r.FallingKnifeCount() == 0 {
			clean = append(clean, r)
		}
	}
	return WinRate(clean)
}
