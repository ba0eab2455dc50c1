package clock

import (
	"fmt"
	"time"
)

// TimestampLayout is the layout used for every lifecycle line.
const TimestampLayout = "2006-01-02 15:04:05"

// Clock abstracts the wall clock so tests can control elapsed durations.
type Clock interface {
	Now() time.Time
}

// Real is the system clock.
type Real struct{}

// Now returns the current local time.
func (Real) Now() time.Time {
	return time.Now()
}

// FormatTimestamp renders t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatDuration renders d as hours, minutes and seconds, dropping leading
// zero units: "1h 2m 3.45s", "2m 3.45s" or "3.45s". Negative durations are
// reported as zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := d.Seconds()
	hours := int(total / 3600)
	minutes := int((total - float64(hours)*3600) / 60)
	seconds := total - float64(hours)*3600 - float64(minutes)*60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %.2fs", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %.2fs", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", seconds)
	}
}
