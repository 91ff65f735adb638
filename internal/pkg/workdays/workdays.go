package workdays

import (
	"math"
	"time"
)

// Between returns every calendar date from start to end inclusive whose
// weekday is not Saturday or Sunday, in order. Dates are normalized to
// midnight in start's location. An end before start yields an empty
// slice.
func Between(start, end time.Time) []time.Time {
	var dates []time.Time

	current := Truncate(start)
	last := Truncate(end)

	for !current.After(last) {
		wd := current.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, current)
		}
		current = current.AddDate(0, 0, 1)
	}

	return dates
}

// InclusiveDays returns the number of calendar days from start to end
// inclusive (end − start in days + 1). A one-day range yields 1.
func InclusiveDays(start, end time.Time) int {
	s := Truncate(start)
	e := Truncate(end)
	if e.Before(s) {
		return 0
	}
	// Rounding absorbs the 23/25-hour days around DST transitions.
	return int(math.Round(e.Sub(s).Hours()/24)) + 1
}

// DaysInMonth returns the calendar length of a month. This is the
// payroll denominator; attendance rates use Between instead, which
// filters weekends. The two denominators are intentionally distinct.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Truncate drops the time-of-day component, keeping the location.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
