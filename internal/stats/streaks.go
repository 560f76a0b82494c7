package stats

import "pnl-journal/internal/models"

// Streaks summarizes win/loss run lengths. Current is the streak active
// at the most recent trading day: positive for a win streak, negative
// for a loss streak, 0 for an empty collection.
type Streaks struct {
	LongestWin  int `json:"longestWinStreak"`
	LongestLoss int `json:"longestLossStreak"`
	Current     int `json:"currentStreak"`
}

// Run is one maximal sequence of same-signed trading days.
type Run struct {
	Length int  `json:"length"`
	Win    bool `json:"win"`
}

// tradingDaysInOrder returns the chronologically sorted records with
// zero-P&L days removed, the shared preprocessing for streak metrics.
func tradingDaysInOrder(records []models.DayRecord) []models.DayRecord {
	sorted := SortByDay(records)
	days := sorted[:0]
	for _, r := range sorted {
		if r.IsTradingDay() {
			days = append(days, r)
		}
	}
	return days
}

// WinLossStreaks walks trading days chronologically and reports the
// longest win streak, the longest loss streak, and the streak still
// active at the latest record.
func WinLossStreaks(records []models.DayRecord) Streaks {
	var s Streaks
	var run int
	var winning bool
	for _, r := range tradingDaysInOrder(records) {
		isWin := r.TotalPL > 0
		if run == 0 || isWin != winning {
			run = 1
			winning = isWin
		} else {
			run++
		}
		if winning && run > s.LongestWin {
			s.LongestWin = run
		}
		if !winning && run > s.LongestLoss {
			s.LongestLoss = run
		}
	}
	if run > 0 {
		if winning {
			s.Current = run
		} else {
			s.Current = -run
		}
	}
	return s
}

// ConsecutiveRuns segments trading days into maximal same-signed runs in
// chronological order.
func ConsecutiveRuns(records []models.DayRecord) []Run {
	days := tradingDaysInOrder(records)
	runs := []Run{}
	for _, r := range days {
		isWin := r.TotalPL > 0
		if n := len(runs); n > 0 && runs[n-1].Win == isWin {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, Run{Length: 1, Win: isWin})
	}
	return runs
}
