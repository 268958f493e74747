package services

import (
	"context"
	"errors"
	"sync"

	"calendar-admin-server/models"

	"golang.org/x/exp/slices"
)

// Edit flow states.
const (
	EditClosed     = "closed"
	EditOpen       = "open"
	EditCommitting = "committing"
)

var (
	ErrNotOpen        = errors.New("no edit in progress")
	ErrAlreadyOpen    = errors.New("another date is being edited")
	ErrCommitInFlight = errors.New("a save is already in progress")
	ErrInvalidStatus  = errors.New("invalid day status")
)

// EditFlow is the select-date → choose-status → commit state machine. The
// store is only touched by Commit; opening, editing the draft or navigating
// away never persists anything. A commit that fails keeps the draft so the
// admin can retry.
//
// Authorization is the caller's responsibility: the flow assumes whoever
// drives it already holds an admin session.
type EditFlow struct {
	store DayStore

	mu           sync.Mutex
	state        string
	date         string
	draftStatus  string
	draftMessage string
}

// EditSnapshot is the read-only view of the flow, for the UI layer.
type EditSnapshot struct {
	State   string `json:"state"`
	Date    string `json:"date,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewEditFlow(store DayStore) *EditFlow {
	return &EditFlow{store: store, state: EditClosed}
}

// OpenFor starts editing a date, seeding the draft from the stored record or
// the unknown/empty defaults. A load failure is not fatal: the draft simply
// starts from the defaults, same as an absent record.
func (f *EditFlow) OpenFor(ctx context.Context, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == EditCommitting {
		return ErrCommitInFlight
	}
	if f.state == EditOpen && f.date != date {
		return ErrAlreadyOpen
	}

	records, _ := f.store.LoadAll(ctx)
	rec, ok := records[date]
	if !ok {
		rec = DayRecord{Status: models.StatusUnknown}
	}

	f.state = EditOpen
	f.date = date
	f.draftStatus = rec.Status
	f.draftMessage = rec.Message
	return nil
}

// SelectStatus changes the draft status. Pure state transition, nothing is
// persisted.
func (f *EditFlow) SelectStatus(status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != EditOpen {
		return ErrNotOpen
	}
	if !slices.Contains(models.DayStatuses, status) {
		return ErrInvalidStatus
	}
	f.draftStatus = status
	return nil
}

// SetMessage replaces the draft message.
func (f *EditFlow) SetMessage(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != EditOpen {
		return ErrNotOpen
	}
	f.draftMessage = message
	return nil
}

// Commit persists the draft through the store. On success the flow closes and
// the written record is returned; on failure the flow stays open with the
// draft intact. A second Commit while one is outstanding is rejected.
func (f *EditFlow) Commit(ctx context.Context, updatedBy uint) (DayRecord, error) {
	f.mu.Lock()
	if f.state == EditCommitting {
		f.mu.Unlock()
		return DayRecord{}, ErrCommitInFlight
	}
	if f.state != EditOpen {
		f.mu.Unlock()
		return DayRecord{}, ErrNotOpen
	}
	f.state = EditCommitting
	date, status, message := f.date, f.draftStatus, f.draftMessage
	f.mu.Unlock()

	rec, err := f.store.Upsert(ctx, date, status, message, updatedBy)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = EditOpen
		return DayRecord{}, err
	}

	f.state = EditClosed
	f.date = ""
	f.draftStatus = models.StatusUnknown
	f.draftMessage = ""
	return rec, nil
}

// Cancel discards the draft without persisting.
func (f *EditFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == EditCommitting {
		// The in-flight save cannot be aborted; it will close the flow itself.
		return
	}
	f.state = EditClosed
	f.date = ""
	f.draftStatus = models.StatusUnknown
	f.draftMessage = ""
}

// Snapshot returns the current state for the UI layer.
func (f *EditFlow) Snapshot() EditSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := EditSnapshot{State: f.state}
	if f.state != EditClosed {
		snap.Date = f.date
		snap.Status = f.draftStatus
		snap.Message = f.draftMessage
	}
	return snap
}
