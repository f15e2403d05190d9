package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotedesk/testhelpers"
)

func TestSetToast(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	SetToast(e, "success", "Quote saved")

	var trigger map[string]map[string]string
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	toast := trigger["showToast"]
	if toast["message"] != "Quote saved" || toast["type"] != "success" {
		t.Errorf("toast payload = %v", toast)
	}

	// The flash cookie carries the same payload for non-HTMX redirects.
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash_toast" {
			found = true
		}
	}
	if !found {
		t.Error("flash_toast cookie not set")
	}
}

func TestSetToast_MergesExistingTrigger(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	e.Response.Header().Set("HX-Trigger", `{"refreshTotals":{}}`)
	SetToast(e, "success", "Done")

	var trigger map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := trigger["refreshTotals"]; !ok {
		t.Error("existing trigger event was dropped")
	}
	if _, ok := trigger["showToast"]; !ok {
		t.Error("toast event missing from merged trigger")
	}
}

func TestErrorToast(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := ErrorToast(e, http.StatusBadRequest, "Nope"); err != nil {
		t.Fatalf("ErrorToast returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("HX-Reswap: none not set")
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("toast trigger missing")
	}
}
