package services

import (
	"fmt"
	"time"
)

// Pure calendar math. Everything here works on the date's local calendar
// fields, no timezone conversion, and is total for valid inputs.

// DaysInMonth returns the number of days in the given month (1-12).
// Day zero of the following month is the last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// FirstWeekdayOfMonth returns the weekday of the 1st with Monday=0..Sunday=6,
// remapped from Go's Sunday=0 convention.
func FirstWeekdayOfMonth(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday()
	return (int(wd) + 6) % 7
}

// ISODate formats a date as YYYY-MM-DD, zero-padded.
func ISODate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseISODate parses a YYYY-MM-DD string into a local-time date.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// SameDay reports whether two dates share year, month and day of month.
func SameDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}

// IsToday reports whether the date matches now's local calendar date.
func IsToday(t, now time.Time) bool {
	return SameDay(t, now)
}

// PreviousMonth returns the first day of the month before t's month.
func PreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, time.Local)
}

// NextMonth returns the first day of the month after t's month.
func NextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.Local)
}

// ISOWeekNumber computes the ISO-8601 week number: shift the date to the
// Thursday of its week (Sunday counts as weekday 7), then count weeks from
// January 1st of the shifted year. Handles year-boundary weeks, e.g.
// 2020-12-31 is week 53 and 2024-01-01 is week 1.
func ISOWeekNumber(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	dayNum := int(d.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	d = d.AddDate(0, 0, 4-dayNum)
	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(yearStart).Hours()/24) + 1
	return (days + 6) / 7
}

// WeekStart returns the Monday on or before t, shifted by offsetWeeks weeks.
// Sunday is treated as the sixth day after the preceding Monday.
func WeekStart(t time.Time, offsetWeeks int) time.Time {
	day := int(t.Weekday())
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	return time.Date(t.Year(), t.Month(), t.Day()+diff+offsetWeeks*7, 0, 0, 0, 0, time.Local)
}
