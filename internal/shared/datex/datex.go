// Package datex holds the calendar-date helpers shared by the pipeline.
// A calendar date is represented as a time.Time at 00:00 UTC.
package datex

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the calendar date of t as seen in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return Date(local.Year(), local.Month(), local.Day())
}

// Normalize drops the clock part of d, keeping its own calendar date.
func Normalize(d time.Time) time.Time {
	return Date(d.Year(), d.Month(), d.Day())
}

func Parse(s string) (time.Time, error) {
	d, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return d, nil
}

func Format(d time.Time) string {
	return d.Format(Layout)
}

// Within reports start <= d <= end on calendar dates.
func Within(d, start, end time.Time) bool {
	d = Normalize(d)
	return !d.Before(Normalize(start)) && !d.After(Normalize(end))
}

// MinuteOfDay returns hour*60+minute of t in loc. Seconds are dropped.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// ParseClock parses "HH:MM" (or "HH:MM:SS") into minutes after midnight.
func ParseClock(s string) (int, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
}

func EndOfMonth(d time.Time) time.Time {
	return Date(d.Year(), d.Month()+1, 1).AddDate(0, 0, -1)
}

// Range returns every date in [start, end].
func Range(start, end time.Time) []time.Time {
	start, end = Normalize(start), Normalize(end)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
