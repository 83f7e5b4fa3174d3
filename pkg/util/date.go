package util

import "time"

// DateLayout is the wire format of calendar dates (date pickers, JSON, query strings).
const DateLayout = "2006-01-02"

// Calendar names accepted by NextDates.
const (
	CalendarDaily    = "daily"
	CalendarWeekdays = "weekdays"
)

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CalendarDate truncates t to its calendar date in loc and returns it as midnight UTC.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDates returns n consecutive dates strictly after last. With CalendarWeekdays
// Saturdays and Sundays are skipped; any other value steps one calendar day.
func NextDates(last time.Time, n int, calendar string) []time.Time {
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	d := last
	for len(out) < n {
		d = d.AddDate(0, 0, 1)
		if calendar == CalendarWeekdays {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
