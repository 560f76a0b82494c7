package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTruncateStringProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("never exceeds max length", prop.ForAll(
		func(s string, maxLen int) bool {
			return len(TruncateString(s, maxLen)) <= maxLen
		},
		gen.AlphaString(),
		gen.IntRange(0, 40),
	))

	properties.Property("short strings pass through unchanged", prop.ForAll(
		func(s string) bool {
			return TruncateString(s, len(s)) == s
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestPaddingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("padded strings have exact width", prop.ForAll(
		func(s string, extra int) bool {
			width := len(s) + extra
			return len(PadLeft(s, width)) == width && len(PadRight(s, width)) == width
		},
		gen.AlphaString(),
		gen.IntRange(0, 20),
	))

	properties.Property("padding preserves content", prop.ForAll(
		func(s string, extra int) bool {
			width := len(s) + extra
			return strings.HasSuffix(PadLeft(s, width), s) &&
				strings.HasPrefix(PadRight(s, width), s)
		},
		gen.AlphaString(),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

func TestBarProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("bar width stays within bounds", prop.ForAll(
		func(value, max float64) bool {
			bar := Bar(value, max, 20)
			n := strings.Count(bar, "█")
			if value <= 0 || max <= 0 {
				return n == 0
			}
			if value <= max {
				return n >= 1 && n <= 20
			}
			return n >= 1
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(0, 1000),
	))

	properties.TestingRun(t)
}

func TestFormatStreakProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("streak sign determines suffix", prop.ForAll(
		func(streak int) bool {
			out := FormatStreak(streak)
			switch {
			case streak > 0:
				return strings.HasSuffix(out, "wins")
			case streak < 0:
				return strings.HasSuffix(out, "losses") && !strings.Contains(out, "-")
			default:
				return out == "none"
			}
		},
		gen.IntRange(-50, 50),
	))

	properties.TestingRun(t)
}
