package stats

import (
	"sort"
	"time"

	"pnl-journal/internal/models"
)

// TickerPL is a per-symbol attribution row.
type TickerPL struct {
	Symbol string  `json:"symbol"`
	PL     float64 `json:"pl"`
	Trades int     `json:"trades"`
}

// TagPL is a per-tag attribution row. Count is the number of
// (record, tag) occurrences, not distinct records.
type TagPL struct {
	Tag   string  `json:"tag"`
	PL    float64 `json:"pl"`
	Count int     `json:"count"`
}

// WeekdayPL is one of the seven day-of-week buckets.
type WeekdayPL struct {
	Weekday time.Weekday `json:"weekday"`
	PL      float64      `json:"pl"`
}

// MonthlyReturn aggregates one YYYY-MM bucket.
type MonthlyReturn struct {
	Month   string  `json:"month"`
	PL      float64 `json:"pl"`
	Trades  int     `json:"trades"`
	WinRate float64 `json:"winRate"`
}

// PLByTicker distributes each day's TotalPL evenly across that day's
// trades and accumulates per-symbol sums and trade counts. The even split
// is an approximation: no per-trade P&L is recorded, only per-trade
// percentage returns. Result is sorted by P&L descending, symbol
// ascending on ties.
func PLByTicker(records []models.DayRecord) []TickerPL {
	sums := make(map[string]*TickerPL)
	for _, r := range records {
		if len(r.Trades) == 0 {
			continue
		}
		share := r.TotalPL / float64(len(r.Trades))
		for _, t := range r.Trades {
			row, ok := sums[t.Symbol]
			if !ok {
				row = &TickerPL{Symbol: t.Symbol}
				sums[t.Symbol] = row
			}
			row.PL += share
			row.Trades++
		}
	}
	out := make([]TickerPL, 0, len(sums))
	for _, row := range sums {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PL != out[j].PL {
			return out[i].PL > out[j].PL
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// PLByDayOfWeek buckets day P&L into the seven weekdays, Sunday first.
// All seven buckets are always present, absent ones at 0.
func PLByDayOfWeek(records []models.DayRecord) []WeekdayPL {
	out := make([]WeekdayPL, 7)
	for i := range out {
		out[i].Weekday = time.Weekday(i)
	}
	for _, r := range records {
		out[int(r.Day().Weekday())].PL += r.TotalPL
	}
	return out
}

// PLByTag accumulates each record's full TotalPL under every one of its
// tags. A multi-tag day is counted once per tag: this is attribution,
// not a partition, so tag sums may exceed cumulative P&L. Sorted by P&L
// descending, tag ascending on ties.
func PLByTag(records []models.DayRecord) []TagPL {
	sums := make(map[string]*TagPL)
	for _, r := range records {
		for _, tag := range r.Tags {
			row, ok := sums[tag]
			if !ok {
				row = &TagPL{Tag: tag}
				sums[tag] = row
			}
			row.PL += r.TotalPL
			row.Count++
		}
	}
	out := make([]TagPL, 0, len(sums))
	for _, row := range sums {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PL != out[j].PL {
			return out[i].PL > out[j].PL
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// MonthlyPL sums TotalPL over records falling in the given month.
func MonthlyPL(records []models.DayRecord, year int, month time.Month) float64 {
	var sum float64
	key := models.MonthKey(year, month)
	for _, r := range records {
		if len(r.ID) >= 7 && r.ID[:7] == key {
			sum += r.TotalPL
		}
	}
	return sum
}

// MonthlyFallingKnives sums falling-knife counts over the given month.
func MonthlyFallingKnives(records []models.DayRecord, year int, month time.Month) int {
	var sum int
	key := models.MonthKey(year, month)
	for _, r := range records {
		if len(r.ID) >= 7 && r.ID[:7] == key {
			sum += r.FallingKnifeCount()
		}
	}
	return sum
}

// WeeklyPL sums TotalPL over the Sunday-to-Saturday week containing the
// most recent record. Returns 0 for an empty collection.
func WeeklyPL(records []models.DayRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	latest := records[0]
	for _, r := range records[1:] {
		if r.ID > latest.ID {
			latest = r
		}
	}
	day := latest.Day()
	start := day.AddDate(0, 0, -int(day.Weekday()))
	end := start.AddDate(0, 0, 6)
	startKey, endKey := models.DayKey(start), models.DayKey(end)

	var sum float64
	for _, r := range records {
		if r.ID >= startKey && r.ID <= endKey {
			sum += r.TotalPL
		}
	}
	return sum
}

// MostRecentMonth is the (year, month) of the chronologically latest
// record, or the current calendar month when the collection is empty.
func MostRecentMonth(records []models.DayRecord) (int, time.Month) {
	if len(records) == 0 {
		now := time.Now()
		return now.Year(), now.Month()
	}
	latest := records[0]
	for _, r := range records[1:] {
		if r.ID > latest.ID {
			latest = r
		}
	}
	day := latest.Day()
	return day.Year(), day.Month()
}

// MonthlyReturns groups records into YYYY-MM buckets with P&L, trade
// count, and per-month win rate (zero-P&L days excluded from the win-rate
// denominator as everywhere else). Sorted ascending by month key.
func MonthlyReturns(records []models.DayRecord) []MonthlyReturn {
	type bucket struct {
		pl           float64
		trades       int
		wins, traded int
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		if len(r.ID) < 7 {
			continue
		}
		key := r.ID[:7]
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.pl += r.TotalPL
		b.trades += r.NumberOfTrades
		if r.IsTradingDay() {
			b.traded++
			if r.TotalPL > 0 {
				b.wins++
			}
		}
	}
	out := make([]MonthlyReturn, 0, len(buckets))
	for key, b := range buckets {
		m := MonthlyReturn{Month: key, PL: b.pl, Trades: b.trades}
		if b.traded > 0 {
			m.WinRate = float64(b.wins) / float64(b.traded) * 100
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
