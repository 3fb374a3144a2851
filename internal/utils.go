package internal

import (
	"fmt"
	"strings"
	"time"
)

// Progress renders a single-line progress bar for count/total, ending with a
// carriage return so the next call overwrites it. The suffix is appended
// verbatim (e.g. an ETA string).
func Progress(count, total int, suffix string) string {
	const barLen = 40

	filled := 0
	percents := 0.0
	if total > 0 {
		filled = int(float64(barLen)*float64(count)/float64(total) + 0.5)
		percents = float64(int(1000.0*float64(count)/float64(total)+0.5)) / 10.0
	}
	if filled > barLen {
		filled = barLen
	}

	bar := strings.Repeat("█", filled) + strings.Repeat(" ", barLen-filled)
	return fmt.Sprintf("  Progress: [%s] %.1f%%%s\r", bar, percents, suffix)
}

// EstimateRemainingTime extrapolates the remaining run time from the number
// of processed items and the time elapsed since start. count must be > 0.
func EstimateRemainingTime(count, total int, start time.Time) string {
	elapsed := time.Since(start)
	perUnit := elapsed / time.Duration(count)
	remaining := perUnit*time.Duration(total) - elapsed
	if remaining < 0 {
		remaining = 0
	}
	h, m, s := SecondsToHMS(remaining)
	return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
}

// SecondsToHMS converts a duration into whole hours, minutes and seconds.
func SecondsToHMS(d time.Duration) (hours, minutes, seconds int) {
	total := int(d.Seconds())
	hours = total / 3600
	minutes = (total % 3600) / 60
	seconds = total % 60
	return hours, minutes, seconds
}
