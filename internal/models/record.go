// Package models defines the journal's core data types.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Trade represents a single trade taken on a day.
// PercentReturn is entered per trade and is independent of the day's TotalPL.
type Trade struct {
	Symbol        string  `json:"symbol"`
	PercentReturn float64 `json:"percentReturn"`
}

// DayRecord is one journal row for a single calendar date.
//
// ID is the date in YYYY-MM-DD form and doubles as the chronological sort
// key (lexicographic order on the zero-padded string equals date order).
// TotalPL is entered by the user and is not derived from Trades.
type DayRecord struct {
	ID             string   `json:"id"`
	TotalPL        float64  `json:"totalPL"`
	Trades         []Trade  `json:"trades"`
	NumberOfTrades int      `json:"numberOfTrades"`
	Notes          string   `json:"notes"`
	Tags           []string `json:"tags"`
	FallingKnives  *int     `json:"fallingKnives,omitempty"`
}

// FallingKnifeCount returns the day's falling-knife count, treating an
// unset field as zero. Every read site goes through this accessor.
func (r *DayRecord) FallingKnifeCount() int {
	if r.FallingKnives == nil {
		return 0
	}
	return *r.FallingKnives
}

// IsTradingDay reports whether the record counts toward win/loss
// denominators. Days with zero P&L are excluded from those ratios but
// still contribute to cumulative sums and day counts.
func (r *DayRecord) IsTradingDay() bool {
	return r.TotalPL != 0
}

// Day returns the record's calendar date in local time.
// The ID is assumed well-formed; see ParseDay.
func (r *DayRecord) Day() time.Time {
	t, _ := ParseDay(r.ID)
	return t
}

// UserSettings holds the user-level adjustment scalars. The statistics
// engine treats these as opaque inputs.
type UserSettings struct {
	NetWorth        float64 `json:"netWorth"`
	StartingBalance float64 `json:"startingBalance"`
}

// ParseDay parses a YYYY-MM-DD date key into a local-time calendar date.
//
// The components are split and the date constructed explicitly in
// time.Local so that weekday and month derivations never shift by a day
// depending on the host timezone, which happens when the string is handed
// to a generic parser that assumes UTC.
func ParseDay(id string) (time.Time, error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, fmt.Errorf("invalid date key %q: want YYYY-MM-DD", id)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in date key %q", id)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in date key %q", id)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in date key %q", id)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date key %q out of range", id)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// DayKey formats a time as a YYYY-MM-DD date key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey formats a (year, month) pair as a YYYY-MM grouping key.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
