package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleQuoteView_FullPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newQuoteWithDocument(t, app)
	handler := HandleQuoteView(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+quote.Id, nil)
	req.SetPathValue("quoteId", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "<html")
	testhelpers.AssertHTMLContains(t, body, "Test quote")
	testhelpers.AssertHTMLContains(t, body, "Gros œuvre")
	testhelpers.AssertHTMLContains(t, body, "Fondations")
	// 4 × 120 with NBSP-free small amount formatting.
	testhelpers.AssertHTMLContains(t, body, "480,00")
}

func TestHandleQuoteView_HTMXPartial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newQuoteWithDocument(t, app)
	handler := HandleQuoteView(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+quote.Id, nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("quoteId", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("HTMX request should not render the full page layout")
	}
	testhelpers.AssertHTMLContains(t, body, "quote-table")
}

func TestHandleQuoteView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteView(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/nope", nil)
	req.SetPathValue("quoteId", "nope")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleQuoteTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newQuoteWithDocument(t, app)
	handler := HandleQuoteTotals(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+quote.Id+"/totals", nil)
	req.SetPathValue("quoteId", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "quote-totals")
	testhelpers.AssertHTMLContains(t, body, "480,00")
}
