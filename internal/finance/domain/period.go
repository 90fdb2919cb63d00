package domain

import "time"

// FirstDayOfMonth returns midnight of the first day of t's month in t's location.
func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// LastInstantOfMonth returns one nanosecond before the first instant of the next month.
func LastInstantOfMonth(t time.Time) time.Time {
	return FirstDayOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
