package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pnl-journal/internal/errors"
	"pnl-journal/internal/models"
)

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "Mar 2024", FormatMonth("2024-03"))
	assert.Equal(t, "not-a-month", FormatMonth("not-a-month"))
}

func TestFormatStreak(t *testing.T) {
	assert.Equal(t, "3 wins", FormatStreak(3))
	assert.Equal(t, "2 losses", FormatStreak(-2))
	assert.Equal(t, "none", FormatStreak(0))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "exact", TruncateString("exact", 5))
	assert.Equal(t, "long st...", TruncateString("long string here", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}

func TestParseTradeSpec(t *testing.T) {
	trade, err := parseTradeSpec("aapl:1.5")
	require.NoError(t, err)
	assert.Equal(t, models.Trade{Symbol: "AAPL", PercentReturn: 1.5}, trade)

	trade, err = parseTradeSpec("TSLA:-0.7")
	require.NoError(t, err)
	assert.Equal(t, models.Trade{Symbol: "TSLA", PercentReturn: -0.7}, trade)

	for _, spec := range []string{"", "AAPL", ":1.5", "AAPL:abc"} {
		_, err := parseTradeSpec(spec)
		assert.Error(t, err, spec)
	}
}

func TestResolveDay(t *testing.T) {
	id, err := resolveDay("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", id)

	id, err = resolveDay("today")
	require.NoError(t, err)
	assert.Equal(t, models.DayKey(time.Now()), id)

	_, err = resolveDay("15/03/2024")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", Bar(0, 100, 10))
	assert.Equal(t, "", Bar(50, 0, 10))
	assert.Equal(t, "█", Bar(1, 100, 10))
	assert.Equal(t, "█████", Bar(50, 100, 10))
	assert.Equal(t, "██████████", Bar(100, 100, 10))
}
