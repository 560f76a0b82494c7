package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pnl-journal/internal/models"
)

func TestRiskMetrics(t *testing.T) {
	// 100 records with P&L 0, 10, 20, ... 990, dates shuffled by
	// construction order so the TotalPL sort is exercised
	records := make([]models.DayRecord, 0, 100)
	for i := 99; i >= 0; i-- {
		records = append(records, day(fmt.Sprintf("2024-01-%02d", i%28+1), float64(i*10)))
	}

	r := RiskMetrics(records)

	// floor(100*0.05) = 5, floor(100*0.01) = 1
	assert.Equal(t, 50.0, r.ValueAtRisk95)
	assert.Equal(t, 10.0, r.ValueAtRisk99)
	// mean of 0..50 step 10
	assert.InDelta(t, 25.0, r.ConditionalVaR95, 1e-9)
}

func TestRiskMetricsEmpty(t *testing.T) {
	assert.Equal(t, RiskReport{}, RiskMetrics(nil))
}

func TestRiskMetricsSingleRecord(t *testing.T) {
	r := RiskMetrics([]models.DayRecord{day("2024-01-01", -75)})

	assert.Equal(t, -75.0, r.ValueAtRisk95)
	assert.Equal(t, -75.0, r.ValueAtRisk99)
	assert.Equal(t, -75.0, r.ConditionalVaR95)
}

func TestRMultiples(t *testing.T) {
	// avg loss magnitude: (50+150)/2 = 100
	records := []models.DayRecord{
		day("2024-01-02", -50),
		day("2024-01-01", 300),
		day("2024-01-04", -150),
		day("2024-01-03", 100),
	}

	r := RMultiples(records)

	assert.Equal(t, -1.0, r.AvgLossR)
	assert.InDelta(t, 2.0, r.AvgWinR, 1e-9) // avgWin 200 / avgLoss 100

	assert.Equal(t, []RMultiplePoint{
		{Date: "2024-01-01", RMultiple: 3},
		{Date: "2024-01-02", RMultiple: -0.5},
		{Date: "2024-01-03", RMultiple: 1},
		{Date: "2024-01-04", RMultiple: -1.5},
	}, r.Days)
}

func TestRMultiplesNoLosses(t *testing.T) {
	r := RMultiples([]models.DayRecord{day("2024-01-01", 100)})

	assert.Equal(t, math.Inf(1), r.AvgWinR)
	assert.Equal(t, 0.0, r.Days[0].RMultiple)
}

func TestRMultiplesEmpty(t *testing.T) {
	r := RMultiples(nil)

	assert.Equal(t, 0.0, r.AvgWinR)
	assert.Equal(t, 0.0, r.AvgLossR)
	assert.Empty(t, r.Days)
}
