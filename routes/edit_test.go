package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"calendar-admin-server/models"
	"calendar-admin-server/services"

	"github.com/kataras/iris/v12"
)

type editResponse struct {
	Success bool                  `json:"success"`
	Data    services.EditSnapshot `json:"data"`
}

// Every edit test gets a distinct user ID so the per-admin flows held in the
// package map never bleed between tests.

func TestEditFlowCommitOverHTTP(t *testing.T) {
	app := buildTestApp(t)
	token := signTestToken(10, true)

	resp := doJSON(app, http.MethodPost, "/api/calendar/edit/open", token, iris.Map{"date": "2024-03-15"})
	if resp.Code != http.StatusOK {
		t.Fatalf("open: %d: %s", resp.Code, resp.Body.String())
	}
	var state editResponse
	json.Unmarshal(resp.Body.Bytes(), &state)
	if state.Data.State != services.EditOpen || state.Data.Status != models.StatusUnknown {
		t.Fatalf("after open: %+v", state.Data)
	}

	resp = doJSON(app, http.MethodPost, "/api/calendar/edit/status", token, iris.Map{"status": "available"})
	if resp.Code != http.StatusOK {
		t.Fatalf("status: %d", resp.Code)
	}

	resp = doJSON(app, http.MethodPost, "/api/calendar/edit/message", token, iris.Map{"message": "Home office"})
	if resp.Code != http.StatusOK {
		t.Fatalf("message: %d", resp.Code)
	}

	resp = doJSON(app, http.MethodPost, "/api/calendar/edit/commit", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("commit: %d: %s", resp.Code, resp.Body.String())
	}

	// The flow is closed and the store holds the committed record
	resp = doJSON(app, http.MethodGet, "/api/calendar/edit/", token, nil)
	state = editResponse{}
	json.Unmarshal(resp.Body.Bytes(), &state)
	if state.Data.State != services.EditClosed {
		t.Fatalf("after commit: %+v", state.Data)
	}

	var all struct {
		Data map[string]services.DayRecord `json:"data"`
	}
	resp = doJSON(app, http.MethodGet, "/api/calendar/", "", nil)
	json.Unmarshal(resp.Body.Bytes(), &all)
	if rec := all.Data["2024-03-15"]; rec.Status != models.StatusAvailable || rec.Message != "Home office" {
		t.Fatalf("stored record = %+v", rec)
	}
}

func TestEditFlowCancelDiscardsDraft(t *testing.T) {
	app := buildTestApp(t)
	token := signTestToken(11, true)

	doJSON(app, http.MethodPost, "/api/calendar/edit/open", token, iris.Map{"date": "2024-03-16"})
	doJSON(app, http.MethodPost, "/api/calendar/edit/status", token, iris.Map{"status": "unavailable"})

	resp := doJSON(app, http.MethodPost, "/api/calendar/edit/cancel", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("cancel: %d", resp.Code)
	}

	var all struct {
		Data map[string]services.DayRecord `json:"data"`
	}
	resp = doJSON(app, http.MethodGet, "/api/calendar/", "", nil)
	json.Unmarshal(resp.Body.Bytes(), &all)
	if len(all.Data) != 0 {
		t.Fatalf("cancel must not persist anything, got %+v", all.Data)
	}
}

func TestEditFlowErrors(t *testing.T) {
	app := buildTestApp(t)
	token := signTestToken(12, true)

	// Commit with nothing open
	resp := doJSON(app, http.MethodPost, "/api/calendar/edit/commit", token, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("commit while closed: expected 400, got %d", resp.Code)
	}

	// Status change with nothing open
	resp = doJSON(app, http.MethodPost, "/api/calendar/edit/status", token, iris.Map{"status": "available"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status while closed: expected 400, got %d", resp.Code)
	}

	// Opening a second date without closing the first
	doJSON(app, http.MethodPost, "/api/calendar/edit/open", token, iris.Map{"date": "2024-03-16"})
	resp = doJSON(app, http.MethodPost, "/api/calendar/edit/open", token, iris.Map{"date": "2024-03-17"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("double open: expected 409, got %d", resp.Code)
	}

	// An invalid draft status on an open flow
	resp = doJSON(app, http.MethodPost, "/api/calendar/edit/status", token, iris.Map{"status": "busy"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", resp.Code)
	}

	// Edit routes are admin only
	resp = doJSON(app, http.MethodPost, "/api/calendar/edit/open", signTestToken(13, false), iris.Map{"date": "2024-03-16"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("non-admin edit: expected 403, got %d", resp.Code)
	}
}
