package util

import "time"

const dayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date key. Returns (t, true) if valid.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayKey formats t as a YYYY-MM-DD date key.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}
