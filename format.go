package newsdesk

import (
	"fmt"
	"math"
	"time"
)

const wordsPerMinute = 200

// ReadTime estimates reading time for a word count, rounded to the nearest
// minute with a floor of one minute. Exact halves round up, so 500 words
// read as 3 minutes.
func ReadTime(words int) string {
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// RelativeTime formats t relative to now, e.g. "5 minutes ago".
// Times in the future are reported as "just now".
func RelativeTime(t, now time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return ago(int(elapsed/time.Minute), "minute")
	case elapsed < 24*time.Hour:
		return ago(int(elapsed/time.Hour), "hour")
	default:
		return ago(int(elapsed/(24*time.Hour)), "day")
	}
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
