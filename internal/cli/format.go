// Package cli provides the command-line interface for the journal application.
package cli

import (
	"fmt"
	"strings"
	"time"
)

// dateFormat is the display layout for dates, overridable from config.
var dateFormat = "02-Jan-2006"

// SetDateFormat overrides the display date layout.
func SetDateFormat(layout string) {
	if layout != "" {
		dateFormat = layout
	}
}

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format(dateFormat)
}

// FormatWeekday formats a weekday name.
func FormatWeekday(d time.Weekday) string {
	return d.String()
}

// FormatMonth formats a YYYY-MM key as a readable month.
func FormatMonth(key string) string {
	t, err := time.ParseInLocation("2006-01", key, time.Local)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// FormatCount formats an integer count.
func FormatCount(n int) string {
	return fmt.Sprintf("%d", n)
}

// FormatStreak formats a signed current streak for display.
func FormatStreak(streak int) string {
	if streak > 0 {
		return fmt.Sprintf("%d wins", streak)
	}
	if streak < 0 {
		return fmt.Sprintf("%d losses", -streak)
	}
	return "none"
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string to the right.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string to the left.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
