package domain

import "time"

// Date builds a UTC calendar date with no time component.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysInYear returns 365, plus one when the date's year is a leap year.
func DaysInYear(d time.Time) int {
	year := d.Year()
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

// MonthEnd returns the last calendar day of the date's month.
func MonthEnd(d time.Time) time.Time {
	return Date(d.Year(), d.Month()+1, 1).AddDate(0, 0, -1)
}

// FirstOfMonth returns the first calendar day of the date's month.
func FirstOfMonth(d time.Time) time.Time {
	return Date(d.Year(), d.Month(), 1)
}

// DaysLeftInMonth returns the number of days from the date to the end of
// its month, clamped to a minimum of 1 so actual-days proration never
// divides or multiplies by zero on the last day of a month.
func DaysLeftInMonth(d time.Time) int {
	days := MonthEnd(d).Day() - d.Day()
	if days < 1 {
		return 1
	}
	return days
}

// SameMonth reports whether both dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthEnds walks day by day from `from` to `to` (both inclusive) and
// returns the ordered, de-duplicated month-end date of every calendar
// month touched. An empty slice is returned when `to` precedes `from`.
func MonthEnds(from, to time.Time) []time.Time {
	var ends []time.Time

	current := Date(from.Year(), from.Month(), from.Day())
	last := Date(to.Year(), to.Month(), to.Day())

	for !current.After(last) {
		end := MonthEnd(current)
		if len(ends) == 0 || !ends[len(ends)-1].Equal(end) {
			ends = append(ends, end)
		}
		current = current.AddDate(0, 0, 1)
	}

	return ends
}
