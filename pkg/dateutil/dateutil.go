// Package dateutil provides civil-calendar date helpers used by the
// corporation tax engine. All arithmetic works on whole days in UTC;
// statutory day counts are inclusive of both endpoints.
package dateutil

import "time"

// Date constructs a UTC date at midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates a timestamp to a UTC date at midnight.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped adds calendar months to a date, clamping the day of
// month to the length of the target month (31 Jan + 1 month is 28 or
// 29 Feb, never 2/3 Mar). time.AddDate normalizes overflow instead of
// clamping, which misplaces statutory period boundaries.
func AddMonthsClamped(t time.Time, months int) time.Time {
	t = Normalize(t)
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		year--
		month = time.Month(total%12 + 13)
	}
	day := t.Day()
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return Date(year, month, day)
}

// DaysInclusive counts the days from start to end counting both
// endpoints, so DaysInclusive(d, d) == 1. Returns 0 if end precedes
// start.
func DaysInclusive(start, end time.Time) int {
	start, end = Normalize(start), Normalize(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Intersect returns the overlap of two inclusive date ranges. ok is
// false when the ranges do not share at least one day.
func Intersect(aStart, aEnd, bStart, bEnd time.Time) (start, end time.Time, ok bool) {
	start = Normalize(aStart)
	if b := Normalize(bStart); b.After(start) {
		start = b
	}
	end = Normalize(aEnd)
	if b := Normalize(bEnd); b.Before(end) {
		end = b
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// IsLeapYear reports whether a calendar year is a leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
