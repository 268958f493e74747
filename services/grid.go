package services

import (
	"fmt"
	"time"

	"calendar-admin-server/models"
)

// Fixed Norwegian labels, as rendered by the widget.
var (
	NorwegianMonths = []string{
		"Januar", "Februar", "Mars", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Desember",
	}
	NorwegianMonthsLower = []string{
		"januar", "februar", "mars", "april", "mai", "juni",
		"juli", "august", "september", "oktober", "november", "desember",
	}
	NorwegianWeekdays = []string{"Man", "Tir", "Ons", "Tor", "Fre", "Lør", "Søn"}
	// Indexed by Go's Weekday (Sunday=0)
	NorwegianDayNames = []string{"Søndag", "Mandag", "Tirsdag", "Onsdag", "Torsdag", "Fredag", "Lørdag"}
)

// MonthGridSize is the fixed 6x7 layout of the month view. Six weeks always
// fit the worst case of a 31-day month starting on a Sunday (6 leading cells).
const MonthGridSize = 42

// DayRecord is the status payload for one date, as read from a DayStore.
type DayRecord struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DayCell is the read-only projection of one month-grid cell. Any rendering
// surface can consume it without knowing the store's representation.
type DayCell struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	Status         string `json:"status"`
	Message        string `json:"message"`
	IsToday        bool   `json:"isToday"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
}

// WeekRow is the projection of one week-view entry.
type WeekRow struct {
	DayCell
	DayName   string `json:"dayName"`
	MonthName string `json:"monthName"`
}

// MonthView is the full month projection: header labels plus exactly 42 cells.
type MonthView struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"monthName"`
	Weekdays  []string  `json:"weekdays"`
	Cells     []DayCell `json:"cells"`
}

// WeekView is the full week projection: week number, range label, 7 rows.
type WeekView struct {
	WeekNumber int       `json:"weekNumber"`
	WeekLabel  string    `json:"weekLabel"`
	RangeLabel string    `json:"rangeLabel"`
	Rows       []WeekRow `json:"rows"`
}

func cellFor(date time.Time, records map[string]DayRecord, now time.Time, isCurrentMonth bool) DayCell {
	iso := ISODate(date)
	rec, ok := records[iso]
	if !ok {
		rec = DayRecord{Status: models.StatusUnknown}
	}
	return DayCell{
		Date:           iso,
		Day:            date.Day(),
		Status:         rec.Status,
		Message:        rec.Message,
		IsToday:        IsToday(date, now),
		IsCurrentMonth: isCurrentMonth,
	}
}

// BuildMonthGrid produces the ordered 42 cells for ref's month: the tail of
// the previous month, days 1..n of the reference month, then the head of the
// next month until the grid is full.
func BuildMonthGrid(ref time.Time, records map[string]DayRecord, now time.Time) []DayCell {
	cells := make([]DayCell, 0, MonthGridSize)

	year, month := ref.Year(), ref.Month()
	daysInMonth := DaysInMonth(year, month)
	leading := FirstWeekdayOfMonth(year, month)

	prev := PreviousMonth(ref)
	daysInPrev := DaysInMonth(prev.Year(), prev.Month())
	for i := leading - 1; i >= 0; i-- {
		date := time.Date(prev.Year(), prev.Month(), daysInPrev-i, 0, 0, 0, 0, time.Local)
		cells = append(cells, cellFor(date, records, now, false))
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		cells = append(cells, cellFor(date, records, now, true))
	}

	next := NextMonth(ref)
	for day := 1; len(cells) < MonthGridSize; day++ {
		date := time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, time.Local)
		cells = append(cells, cellFor(date, records, now, false))
	}

	return cells
}

// BuildMonthView wraps BuildMonthGrid with the header labels.
func BuildMonthView(ref time.Time, records map[string]DayRecord, now time.Time) MonthView {
	return MonthView{
		Year:      ref.Year(),
		Month:     int(ref.Month()),
		MonthName: NorwegianMonths[int(ref.Month())-1],
		Weekdays:  NorwegianWeekdays,
		Cells:     BuildMonthGrid(ref, records, now),
	}
}

// BuildWeekRows produces the 7 entries starting at WeekStart(ref, offset).
// refMonth marks which calendar month counts as "current" for visual
// de-emphasis only; data access is identical for every row.
func BuildWeekRows(ref time.Time, offset int, records map[string]DayRecord, now time.Time, refMonth time.Month) []WeekRow {
	start := WeekStart(ref, offset)
	rows := make([]WeekRow, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		rows = append(rows, WeekRow{
			DayCell:   cellFor(date, records, now, date.Month() == refMonth),
			DayName:   NorwegianDayNames[int(date.Weekday())],
			MonthName: NorwegianMonthsLower[int(date.Month())-1],
		})
	}
	return rows
}

// BuildWeekView wraps BuildWeekRows with the week number and range labels.
func BuildWeekView(ref time.Time, offset int, records map[string]DayRecord, now time.Time, refMonth time.Month) WeekView {
	start := WeekStart(ref, offset)
	end := start.AddDate(0, 0, 6)
	weekNum := ISOWeekNumber(start)
	return WeekView{
		WeekNumber: weekNum,
		WeekLabel:  fmt.Sprintf("Uke %d", weekNum),
		RangeLabel: fmt.Sprintf("%d. - %d. %s %d", start.Day(), end.Day(), NorwegianMonthsLower[int(end.Month())-1], end.Year()),
		Rows:       BuildWeekRows(ref, offset, records, now, refMonth),
	}
}
