package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pnl-journal/internal/models"
)

func TestPLByTicker(t *testing.T) {
	records := []models.DayRecord{
		{
			ID:      "2024-01-01",
			TotalPL: 100,
			Trades: []models.Trade{
				{Symbol: "AAPL", PercentReturn: 2},
				{Symbol: "TSLA", PercentReturn: -1},
			},
		},
		{
			ID:      "2024-01-02",
			TotalPL: -60,
			Trades: []models.Trade{
				{Symbol: "AAPL", PercentReturn: -3},
			},
		},
		// day without trades contributes nothing
		day("2024-01-03", 500),
	}

	rows := PLByTicker(records)

	assert.Equal(t, []TickerPL{
		{Symbol: "TSLA", PL: 50, Trades: 1},
		{Symbol: "AAPL", PL: -10, Trades: 2},
	}, rows)
}

func TestPLByDayOfWeek(t *testing.T) {
	t.Run("empty input still yields seven buckets", func(t *testing.T) {
		rows := PLByDayOfWeek(nil)

		assert.Len(t, rows, 7)
		for i, row := range rows {
			assert.Equal(t, time.Weekday(i), row.Weekday)
			assert.Equal(t, 0.0, row.PL)
		}
	})

	t.Run("sums into local weekday buckets", func(t *testing.T) {
		records := []models.DayRecord{
			day("2024-01-08", 100), // Monday
			day("2024-01-15", 50),  // Monday
			day("2024-01-06", -30), // Saturday
		}

		rows := PLByDayOfWeek(records)

		assert.Equal(t, time.Sunday, rows[0].Weekday)
		assert.Equal(t, 150.0, rows[int(time.Monday)].PL)
		assert.Equal(t, -30.0, rows[int(time.Saturday)].PL)
	})
}

func TestPLByTag(t *testing.T) {
	records := []models.DayRecord{
		{ID: "2024-01-01", TotalPL: 100, Tags: []string{"momentum", "earnings"}},
		{ID: "2024-01-02", TotalPL: -40, Tags: []string{"momentum"}},
	}

	rows := PLByTag(records)

	// the multi-tag day's P&L counts once per tag
	assert.Equal(t, []TagPL{
		{Tag: "earnings", PL: 100, Count: 1},
		{Tag: "momentum", PL: 60, Count: 2},
	}, rows)
}

func TestMonthlyPL(t *testing.T) {
	records := []models.DayRecord{
		day("2024-01-05", 100),
		day("2024-01-20", -30),
		day("2024-02-01", 999),
	}

	assert.Equal(t, 70.0, MonthlyPL(records, 2024, time.January))
	assert.Equal(t, 0.0, MonthlyPL(records, 2024, time.March))
}

func TestMonthlyFallingKnives(t *testing.T) {
	two := 2
	records := []models.DayRecord{
		{ID: "2024-01-05", FallingKnives: &two},
		{ID: "2024-01-06"},
		{ID: "2024-02-01", FallingKnives: &two},
	}

	assert.Equal(t, 2, MonthlyFallingKnives(records, 2024, time.January))
}

func TestWeeklyPL(t *testing.T) {
	// 2024-01-10 is a Wednesday; its week runs Sun 01-07 .. Sat 01-13
	records := []models.DayRecord{
		day("2024-01-06", 999), // previous week
		day("2024-01-07", 100), // Sunday, in window
		day("2024-01-10", 50),
		day("2024-01-05", -10), // previous week
	}

	assert.Equal(t, 150.0, WeeklyPL(records))
	assert.Equal(t, 0.0, WeeklyPL(nil))
}

func TestMostRecentMonth(t *testing.T) {
	records := []models.DayRecord{
		day("2023-11-02", 1),
		day("2024-03-15", 1),
	}

	year, month := MostRecentMonth(records)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.March, month)

	now := time.Now()
	year, month = MostRecentMonth(nil)
	assert.Equal(t, now.Year(), year)
	assert.Equal(t, now.Month(), month)
}

func TestMonthlyReturns(t *testing.T) {
	records := []models.DayRecord{
		dayWithTrades("2024-02-01", -50, 1),
		dayWithTrades("2024-01-10", 100, 2),
		dayWithTrades("2024-01-11", 0, 1),
		dayWithTrades("2024-01-12", -20, 1),
	}

	rows := MonthlyReturns(records)

	assert.Equal(t, []MonthlyReturn{
		{Month: "2024-01", PL: 80, Trades: 4, WinRate: 50},
		{Month: "2024-02", PL: -50, Trades: 1, WinRate: 0},
	}, rows)
}
