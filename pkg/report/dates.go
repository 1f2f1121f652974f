package report

import (
	"fmt"
	"time"
)

// Weekday glyphs indexed by time.Weekday (Sunday first).
var weekdayKanji = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// parseTimestamp accepts the ISO-8601 variants the upstream APIs emit.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO-8601 timestamp as a Japanese long date,
// e.g. "2025年1月6日（月）". Unparseable input is returned unchanged.
func FormatDate(d string) string {
	t, ok := parseTimestamp(d)
	if !ok {
		return d
	}
	return fmt.Sprintf("%d年%d月%d日（%s）", t.Year(), int(t.Month()), t.Day(), weekdayKanji[t.Weekday()])
}

// ShortDate renders an ISO-8601 timestamp as "M/D" without zero padding.
func ShortDate(d string) string {
	t, ok := parseTimestamp(d)
	if !ok {
		return d
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

// DaysAgo returns whole days elapsed since the timestamp, floored and never
// negative (future timestamps yield 0).
func DaysAgo(d string) int {
	return daysAgoAt(d, time.Now())
}

func daysAgoAt(d string, now time.Time) int {
	t, ok := parseTimestamp(d)
	if !ok {
		return 0
	}
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
