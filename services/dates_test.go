package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.March, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
		{2000, time.February, 29},
		{1900, time.February, 28},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestFirstWeekdayOfMonthMondayOrigin(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 0}, // Jan 1 2024 is a Monday
		{2024, time.March, 4},   // Mar 1 2024 is a Friday
		{2023, time.October, 6}, // Oct 1 2023 is a Sunday
		{2024, time.September, 6},
		{2024, time.April, 0},
	}
	for _, tt := range tests {
		if got := FirstWeekdayOfMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("FirstWeekdayOfMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestISODateZeroPads(t *testing.T) {
	if got := ISODate(date(2024, time.March, 5)); got != "2024-03-05" {
		t.Errorf("ISODate = %q, want 2024-03-05", got)
	}
	if got := ISODate(date(2024, time.December, 31)); got != "2024-12-31" {
		t.Errorf("ISODate = %q, want 2024-12-31", got)
	}
}

func TestParseISODateRoundTrip(t *testing.T) {
	d, err := ParseISODate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseISODate: %v", err)
	}
	if ISODate(d) != "2024-03-15" {
		t.Errorf("round trip gave %q", ISODate(d))
	}
	if _, err := ParseISODate("15/03/2024"); err == nil {
		t.Error("expected error for non-ISO input")
	}
}

func TestISOWeekNumber(t *testing.T) {
	tests := []struct {
		in   time.Time
		want int
	}{
		{date(2024, time.January, 1), 1},
		{date(2020, time.December, 31), 53}, // year-boundary: belongs to week 53 of 2020
		{date(2021, time.January, 1), 53},
		{date(2024, time.December, 30), 1}, // Monday already in week 1 of 2025
		{date(2024, time.March, 15), 11},
		{date(2023, time.January, 1), 52}, // Sunday still in week 52 of 2022
	}
	for _, tt := range tests {
		if got := ISOWeekNumber(tt.in); got != tt.want {
			t.Errorf("ISOWeekNumber(%s) = %d, want %d", ISODate(tt.in), got, tt.want)
		}
	}
}

func TestISOWeekNumberMatchesStdlib(t *testing.T) {
	// Walk two full years and compare against time.Time.ISOWeek
	d := date(2023, time.January, 1)
	for d.Year() < 2025 {
		_, want := d.ISOWeek()
		if got := ISOWeekNumber(d); got != want {
			t.Fatalf("ISOWeekNumber(%s) = %d, stdlib says %d", ISODate(d), got, want)
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestWeekStartIsAlwaysMonday(t *testing.T) {
	// Every day of a sample week maps to the same Monday
	monday := date(2024, time.March, 11)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		got := WeekStart(d, 0)
		if got.Weekday() != time.Monday {
			t.Errorf("WeekStart(%s, 0) is a %v", ISODate(d), got.Weekday())
		}
		if !SameDay(got, monday) {
			t.Errorf("WeekStart(%s, 0) = %s, want %s", ISODate(d), ISODate(got), ISODate(monday))
		}
	}
}

func TestWeekStartSundayBelongsToPrecedingMonday(t *testing.T) {
	sunday := date(2024, time.March, 17)
	if got := WeekStart(sunday, 0); ISODate(got) != "2024-03-11" {
		t.Errorf("WeekStart(Sunday) = %s, want 2024-03-11", ISODate(got))
	}
}

func TestWeekStartOffsetShiftsWholeWeeks(t *testing.T) {
	ref := date(2024, time.March, 15)
	base := WeekStart(ref, 0)
	for _, n := range []int{-3, -1, 1, 2, 10} {
		got := WeekStart(ref, n)
		want := base.AddDate(0, 0, 7*n)
		if !SameDay(got, want) {
			t.Errorf("WeekStart(ref, %d) = %s, want %s", n, ISODate(got), ISODate(want))
		}
	}
}

func TestPreviousNextMonthAcrossYearBoundary(t *testing.T) {
	if got := PreviousMonth(date(2024, time.January, 20)); ISODate(got) != "2023-12-01" {
		t.Errorf("PreviousMonth = %s", ISODate(got))
	}
	if got := NextMonth(date(2024, time.December, 5)); ISODate(got) != "2025-01-01" {
		t.Errorf("NextMonth = %s", ISODate(got))
	}
}

func TestIsToday(t *testing.T) {
	now := date(2024, time.March, 15)
	if !IsToday(date(2024, time.March, 15), now) {
		t.Error("same date should be today")
	}
	if IsToday(date(2024, time.March, 16), now) {
		t.Error("different day is not today")
	}
	if IsToday(date(2023, time.March, 15), now) {
		t.Error("different year is not today")
	}
}
