package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pnl-journal/internal/models"
)

func TestSharpeRatio(t *testing.T) {
	t.Run("annualized mean over population stddev", func(t *testing.T) {
		records := []models.DayRecord{
			day("2024-01-01", 10),
			day("2024-01-02", 20),
		}
		// mean 15, population stddev 5
		assert.InDelta(t, 3*math.Sqrt(252), SharpeRatio(records), 1e-9)
	})

	t.Run("zero stddev", func(t *testing.T) {
		records := []models.DayRecord{
			day("2024-01-01", 10),
			day("2024-01-02", 10),
		}
		assert.Equal(t, 0.0, SharpeRatio(records))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, SharpeRatio(nil))
	})
}

func TestSortinoRatio(t *testing.T) {
	t.Run("downside variance over full sample size", func(t *testing.T) {
		records := []models.DayRecord{
			day("2024-01-01", 10),
			day("2024-01-02", 20),
		}
		// mean 15; downside {10}; variance (10-15)^2 / 2
		want := 15 / math.Sqrt(12.5) * math.Sqrt(252)
		assert.InDelta(t, want, SortinoRatio(records), 1e-9)
	})

	t.Run("no downside days with positive mean", func(t *testing.T) {
		records := []models.DayRecord{
			day("2024-01-01", 10),
			day("2024-01-02", 10),
		}
		assert.Equal(t, math.Inf(1), SortinoRatio(records))
	})

	t.Run("no downside days with zero mean", func(t *testing.T) {
		records := []models.DayRecord{day("2024-01-01", 0)}
		assert.Equal(t, 0.0, SortinoRatio(records))
	})
}

func TestCalmarRatio(t *testing.T) {
	t.Run("annualized mean over max drawdown", func(t *testing.T) {
		records := []models.DayRecord{
			day("2024-01-01", 100),
			day("2024-01-02", -50),
		}
		// mean 25 annualized to 6300, drawdown 50
		assert.InDelta(t, 126.0, CalmarRatio(records), 1e-9)
	})

	t.Run("no drawdown with profit", func(t *testing.T) {
		records := []models.DayRecord{
			day("2024-01-01", 100),
			day("2024-01-02", 100),
		}
		assert.Equal(t, math.Inf(1), CalmarRatio(records))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, CalmarRatio(nil))
	})
}
