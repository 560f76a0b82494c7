// Package stats computes derived trading-performance metrics and series
// from a collection of day records.
//
// Every function is pure: it takes a read-only record collection plus
// scalar parameters and returns newly constructed values. Degenerate
// statistical inputs never panic; empty collections yield zero values or
// empty series, and division by zero in ratio metrics resolves to 0 or
// +Inf per metric (never NaN).
package stats

import (
	"sort"

	"pnl-journal/internal/models"
)

// OutlierThreshold is the day P&L at or above which a record is dropped
// by FilterOutliers.
const OutlierThreshold = 10000

// FilterOutliers returns a new slice without records whose TotalPL is at
// or above OutlierThreshold. Callers opt in: metrics that should see the
// raw collection (e.g. per-ticker attribution) are simply called on the
// unfiltered input.
func FilterOutliers(records []models.DayRecord) []models.DayRecord {
	return FilterOutliersAt(records, OutlierThreshold)
}

// FilterOutliersAt is FilterOutliers with a caller-supplied threshold.
// The threshold is inclusive: a record exactly at it is dropped.
func FilterOutliersAt(records []models.DayRecord, threshold float64) []models.DayRecord {
	out := make([]models.DayRecord, 0, len(records))
	for _, r := range records {
		if r.TotalPL >= threshold {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortByDay returns a copy of records in chronological order. Lexicographic
// order on the YYYY-MM-DD key equals date order, so no date parsing is
// needed here. The caller's slice is never mutated.
func SortByDay(records []models.DayRecord) []models.DayRecord {
	sorted := make([]models.DayRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
