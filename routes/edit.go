package routes

import (
	"errors"
	"log"
	"sync"

	"calendar-admin-server/services"
	"calendar-admin-server/utils"

	"github.com/kataras/iris/v12"
)

// Each admin drives one edit flow at a time; flows are held server-side so
// reconnecting clients resume where they left off.
var (
	editFlowsMu sync.Mutex
	editFlows   = map[uint]*services.EditFlow{}
)

func flowFor(userID uint) *services.EditFlow {
	editFlowsMu.Lock()
	defer editFlowsMu.Unlock()

	flow, ok := editFlows[userID]
	if !ok {
		flow = services.NewEditFlow(Store)
		editFlows[userID] = flow
	}
	return flow
}

type EditOpenInput struct {
	Date string `json:"date" validate:"required"`
}

type EditStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type EditMessageInput struct {
	Message string `json:"message"`
}

func editError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrCommitInFlight):
		utils.CreateError(iris.StatusConflict, "Conflict", "A save is already in progress.", ctx)
	case errors.Is(err, services.ErrAlreadyOpen):
		utils.CreateError(iris.StatusConflict, "Conflict", "Another date is already being edited.", ctx)
	case errors.Is(err, services.ErrNotOpen):
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "No edit in progress.", ctx)
	case errors.Is(err, services.ErrInvalidStatus):
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Status must be available, unavailable or unknown.", ctx)
	default:
		log.Printf("❌ Edit flow error: %v", err)
		utils.CreateError(iris.StatusInternalServerError, "Save Error", "Failed to save the day. Please try again.", ctx)
	}
}

// GetEditState returns the admin's current edit flow snapshot.
func GetEditState(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	ctx.JSON(iris.Map{"success": true, "data": flowFor(userID).Snapshot()})
}

// OpenEdit starts editing a date, seeding the draft from the stored record.
func OpenEdit(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	var input EditOpenInput

	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if _, err := services.ParseISODate(input.Date); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid date format, expected YYYY-MM-DD.", ctx)
		return
	}

	flow := flowFor(userID)
	if err := flow.OpenFor(ctx.Request().Context(), input.Date); err != nil {
		editError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": flow.Snapshot()})
}

// SelectEditStatus changes the draft status without persisting.
func SelectEditStatus(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	var input EditStatusInput

	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	flow := flowFor(userID)
	if err := flow.SelectStatus(input.Status); err != nil {
		editError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": flow.Snapshot()})
}

// SetEditMessage replaces the draft message without persisting.
func SetEditMessage(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	var input EditMessageInput

	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	flow := flowFor(userID)
	if err := flow.SetMessage(input.Message); err != nil {
		editError(err, ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": flow.Snapshot()})
}

// CommitEdit persists the draft through the store. On failure the draft is
// kept so the admin can retry.
func CommitEdit(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	flow := flowFor(userID)

	snap := flow.Snapshot()
	rec, err := flow.Commit(ctx.Request().Context(), userID)
	if err != nil {
		editError(err, ctx)
		return
	}

	utils.Audit(ctx, "calendar.edit.commit", snap.Date, nil, rec)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"date":    snap.Date,
			"status":  rec.Status,
			"message": rec.Message,
		},
	})
}

// CancelEdit discards the draft without persisting.
func CancelEdit(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	flow := flowFor(userID)
	flow.Cancel()
	ctx.JSON(iris.Map{"success": true, "data": flow.Snapshot()})
}
