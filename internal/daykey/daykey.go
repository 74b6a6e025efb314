// Package daykey normalises instants to calendar-day keys ("2006-01-02").
//
// A key is computed in the instant's own location, so the host's wall clock
// decides where a day starts. Key arithmetic is done on civil dates, never by
// adding 24h to an instant, which keeps it correct across DST changes.
package daykey

import (
	"fmt"
	"time"
)

// Layout is the calendar-day key format.
const Layout = "2006-01-02"

// Key returns the calendar-day key of t in t's location.
func Key(t time.Time) string {
	return t.Format(Layout)
}

// Same reports whether a and b fall on the same calendar day, each judged in
// its own location.
func Same(a, b time.Time) bool {
	return Key(a) == Key(b)
}

// Start returns local midnight of the day containing t.
func Start(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Parse converts a key back into midnight of that day in loc.
func Parse(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day key %q: %w", key, err)
	}
	return t, nil
}

// AddDays shifts key by n calendar days (n may be negative).
func AddDays(key string, n int) (string, error) {
	t, err := Parse(key, time.UTC)
	if err != nil {
		return "", err
	}
	return Key(t.AddDate(0, 0, n)), nil
}

// Range returns n consecutive day keys starting at the day of t.
func Range(t time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	start := Start(t)
	keys := make([]string, n)
	for i := range n {
		keys[i] = Key(start.AddDate(0, 0, i))
	}
	return keys
}
