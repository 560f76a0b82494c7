package stats

import (
	"math"
	"sort"

	"pnl-journal/internal/models"
)

// RiskReport holds the historical value-at-risk figures.
type RiskReport struct {
	ValueAtRisk95    float64 `json:"valueAtRisk95"`
	ValueAtRisk99    float64 `json:"valueAtRisk99"`
	ConditionalVaR95 float64 `json:"conditionalVaR95"`
}

// RMultiplePoint is one day's outcome expressed in units of the average
// historical loss.
type RMultiplePoint struct {
	Date      string  `json:"date"`
	RMultiple float64 `json:"rMultiple"`
}

// RMultipleReport is the R-multiple view of the collection. AvgLossR is
// the constant -1 by definition of the unit.
type RMultipleReport struct {
	AvgWinR  float64          `json:"avgWinR"`
	AvgLossR float64          `json:"avgLossR"`
	Days     []RMultiplePoint `json:"days"`
}

// RiskMetrics computes historical VaR from the empirical distribution of
// day P&L: records are sorted ascending by TotalPL (not by date) and the
// 5th/1st percentile values read off at floor(n*q). CVaR95 is the mean of
// the left tail up to and including the 95% index.
func RiskMetrics(records []models.DayRecord) RiskReport {
	n := len(records)
	if n == 0 {
		return RiskReport{}
	}
	pls := make([]float64, n)
	for i, r := range records {
		pls[i] = r.TotalPL
	}
	sort.Float64s(pls)

	idx95 := int(math.Floor(float64(n) * 0.05))
	idx99 := int(math.Floor(float64(n) * 0.01))

	var tail float64
	for _, v := range pls[:idx95+1] {
		tail += v
	}

	return RiskReport{
		ValueAtRisk95:    pls[idx95],
		ValueAtRisk99:    pls[idx99],
		ConditionalVaR95: tail / float64(idx95+1),
	}
}

// RMultiples expresses each day's P&L as a multiple of the average loss
// magnitude ("R"). With no losing days there is no unit R, so the day
// multiples are 0 and AvgWinR follows the +Inf-on-positive convention.
func RMultiples(records []models.DayRecord) RMultipleReport {
	if len(records) == 0 {
		return RMultipleReport{Days: []RMultiplePoint{}}
	}
	avgWin, avgLoss, _, _ := winLossAverages(records)

	report := RMultipleReport{
		AvgLossR: -1,
		Days:     make([]RMultiplePoint, 0, len(records)),
	}
	if avgLoss == 0 {
		if avgWin > 0 {
			report.AvgWinR = math.Inf(1)
		}
	} else {
		report.AvgWinR = avgWin / avgLoss
	}

	for _, r := range SortByDay(records) {
		p := RMultiplePoint{Date: r.ID}
		if avgLoss != 0 {
			p.RMultiple = r.TotalPL / avgLoss
		}
		report.Days = append(report.Days, p)
	}
	return report
}
