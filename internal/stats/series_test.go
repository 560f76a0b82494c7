package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pnl-journal/internal/models"
)

func TestRollingMetrics(t *testing.T) {
	records := []models.DayRecord{
		day("2024-01-03", -30),
		day("2024-01-01", 100),
		day("2024-01-02", 50),
		day("2024-01-04", 20),
	}

	points := RollingMetrics(records, 2)

	assert.Equal(t, []RollingPoint{
		{Date: "2024-01-01", CumulativePL: 100, WindowAvgPL: 100, WindowWinRate: 100},
		{Date: "2024-01-02", CumulativePL: 150, WindowAvgPL: 75, WindowWinRate: 100},
		{Date: "2024-01-03", CumulativePL: 120, WindowAvgPL: 10, WindowWinRate: 50},
		{Date: "2024-01-04", CumulativePL: 140, WindowAvgPL: -5, WindowWinRate: 50},
	}, points)
}

func TestRollingMetricsDefaultWindow(t *testing.T) {
	records := []models.DayRecord{
		day("2024-01-01", 100),
		day("2024-01-02", -50),
	}

	// non-positive window falls back to the default, which clips here
	points := RollingMetrics(records, 0)

	assert.Len(t, points, 2)
	assert.InDelta(t, 25.0, points[1].WindowAvgPL, 1e-9)
}

func TestRollingMetricsEmpty(t *testing.T) {
	assert.Empty(t, RollingMetrics(nil, 5))
}

func TestDrawdownSeries(t *testing.T) {
	records := []models.DayRecord{
		day("2024-01-01", 100),
		day("2024-01-02", -50),
		day("2024-01-03", 150),
	}

	points := DrawdownSeries(records)

	assert.Equal(t, []DrawdownPoint{
		{Date: "2024-01-01", Drawdown: 0, Underwater: 0},
		{Date: "2024-01-02", Drawdown: 50, Underwater: -50},
		{Date: "2024-01-03", Drawdown: 0, Underwater: 0},
	}, points)
}

func TestDrawdownSeriesNegativeStart(t *testing.T) {
	points := DrawdownSeries([]models.DayRecord{day("2024-01-01", -100)})

	// peak never goes positive, so the percentage stays 0
	assert.Equal(t, 0.0, points[0].Drawdown)
	assert.Equal(t, -100.0, points[0].Underwater)
}

func TestVolatilitySeries(t *testing.T) {
	records := []models.DayRecord{
		day("2024-01-01", 10),
		day("2024-01-02", 20),
		day("2024-01-03", 30),
	}

	points := VolatilitySeries(records, 2)

	// population stddev of {10,20} and {20,30} is 5, annualized
	want := 5 * math.Sqrt(252)
	assert.Len(t, points, 2)
	assert.Equal(t, "2024-01-02", points[0].Date)
	assert.InDelta(t, want, points[0].Volatility, 1e-9)
	assert.InDelta(t, want, points[1].Volatility, 1e-9)
}

func TestVolatilitySeriesShortInput(t *testing.T) {
	points := VolatilitySeries([]models.DayRecord{day("2024-01-01", 10)}, 5)

	assert.NotNil(t, points)
	assert.Empty(t, points)
}
