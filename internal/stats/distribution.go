package stats

import (
	"math"

	"pnl-journal/internal/models"
)

// HistogramBin is one interval of the return distribution. Low is
// inclusive, High exclusive except for the final bin.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ReturnDistribution flattens every per-trade percentage return across
// all records into one unordered sequence.
func ReturnDistribution(records []models.DayRecord) []float64 {
	returns := []float64{}
	for _, r := range records {
		for _, t := range r.Trades {
			returns = append(returns, t.PercentReturn)
		}
	}
	return returns
}

// Histogram bins the trade returns into 5-point-wide intervals spanning
// from the floor of the minimum return to the ceiling of the maximum,
// widened if needed so the range always includes 0.
func Histogram(records []models.DayRecord) []HistogramBin {
	returns := ReturnDistribution(records)
	if len(returns) == 0 {
		return []HistogramBin{}
	}

	min, max := returns[0], returns[0]
	for _, v := range returns[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	lo := math.Min(math.Floor(min), 0)
	hi := math.Max(math.Ceil(max), 0)

	const width = 5.0
	nbins := int(math.Ceil((hi - lo) / width))
	if nbins == 0 {
		nbins = 1
	}

	bins := make([]HistogramBin, nbins)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	for _, v := range returns {
		i := int((v - lo) / width)
		if i >= nbins {
			i = nbins - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return bins
}
