package routes

import (
	"log"
	"time"

	"calendar-admin-server/models"
	"calendar-admin-server/services"
	"calendar-admin-server/utils"

	"github.com/kataras/iris/v12"
)

// Store and Gate are the persistence and auth backends, selected at startup.
var (
	Store services.DayStore
	Gate  services.AuthGate
)

type UpsertDayInput struct {
	Date    string `json:"date" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=available unavailable unknown"`
	Message string `json:"message"`
}

// loadRecords performs the bulk read. A transport failure degrades to an
// empty mapping so the rendering path never dies; the error travels back so
// handlers can tell the client the calendar is degraded.
func loadRecords(ctx iris.Context) (map[string]services.DayRecord, bool) {
	records, err := Store.LoadAll(ctx.Request().Context())
	if err != nil {
		log.Printf("❌ Error loading calendar data: %v", err)
		return records, false
	}
	return records, true
}

// GetCalendar returns every stored day record keyed by date.
func GetCalendar(ctx iris.Context) {
	records, ok := loadRecords(ctx)

	res := iris.Map{
		"success": ok,
		"data":    records,
	}
	if !ok {
		res["message"] = "Failed to load calendar data; showing an empty calendar."
	}
	ctx.JSON(res)
}

// GetMonthView returns the 42-cell month projection.
// Query params: year, month (both optional, default to the current month).
func GetMonthView(ctx iris.Context) {
	now := time.Now()
	year := ctx.URLParamIntDefault("year", now.Year())
	month := ctx.URLParamIntDefault("month", int(now.Month()))
	if month < 1 || month > 12 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Month must be between 1 and 12.", ctx)
		return
	}

	records, ok := loadRecords(ctx)
	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	view := services.BuildMonthView(ref, records, now)

	res := iris.Map{
		"success": ok,
		"data":    view,
	}
	if !ok {
		res["message"] = "Failed to load calendar data; showing an empty calendar."
	}
	ctx.JSON(res)
}

// GetWeekView returns the 7-row week projection.
// Query params: date (ISO, defaults to today), offset (weeks relative to the
// date's week), refMonth (1-12, the month view's reference month for visual
// de-emphasis; defaults to the date's month).
func GetWeekView(ctx iris.Context) {
	now := time.Now()

	ref := now
	if dateStr := ctx.URLParam("date"); dateStr != "" {
		parsed, err := services.ParseISODate(dateStr)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid date format, expected YYYY-MM-DD.", ctx)
			return
		}
		ref = parsed
	}

	offset := ctx.URLParamIntDefault("offset", 0)
	refMonth := ctx.URLParamIntDefault("refMonth", int(ref.Month()))
	if refMonth < 1 || refMonth > 12 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "refMonth must be between 1 and 12.", ctx)
		return
	}

	records, ok := loadRecords(ctx)
	view := services.BuildWeekView(ref, offset, records, now, time.Month(refMonth))

	res := iris.Map{
		"success": ok,
		"data":    view,
	}
	if !ok {
		res["message"] = "Failed to load calendar data; showing an empty calendar."
	}
	ctx.JSON(res)
}

// UpsertDay writes or replaces the record for a date. Admin only; the write
// is overwrite-by-key and nothing is cached locally until the store confirms.
func UpsertDay(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	var input UpsertDayInput

	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, err := services.ParseISODate(input.Date); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid date format, expected YYYY-MM-DD.", ctx)
		return
	}

	before, _ := Store.LoadAll(ctx.Request().Context())
	var beforeRec *services.DayRecord
	if rec, found := before[input.Date]; found {
		beforeRec = &rec
	}

	rec, err := Store.Upsert(ctx.Request().Context(), input.Date, input.Status, input.Message, userID)
	if err != nil {
		log.Printf("❌ Error saving day %s: %v", input.Date, err)
		utils.CreateError(iris.StatusInternalServerError, "Save Error", "Failed to save the day. Please try again.", ctx)
		return
	}

	utils.Audit(ctx, "calendar.day.upsert", input.Date, beforeRec, rec)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"date":    input.Date,
			"status":  rec.Status,
			"message": rec.Message,
		},
	})
}

// StatusLabels returns the fixed Norwegian badge labels per status, so thin
// clients render the same wording as the original widget.
func StatusLabels(ctx iris.Context) {
	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			models.StatusAvailable:   "Tilgjengelig",
			models.StatusUnavailable: "Ikke tilgjengelig",
			models.StatusUnknown:     "Ukjent",
		},
	})
}
