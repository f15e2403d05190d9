package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quotedesk/testhelpers"
)

func TestHandleCatalogPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	chapter := testhelpers.CreateTestCatalogChapter(t, app, "Plâtrerie", "finishing")
	sub := testhelpers.CreateTestCatalogSubChapter(t, app, chapter.Id, "Cloisons sèches")
	testhelpers.CreateTestCatalogLine(t, app, sub.Id, "BA13 sur rails", 32)

	handler := HandleCatalogPage(app)
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Plâtrerie")
	testhelpers.AssertHTMLContains(t, body, "Cloisons sèches")
	testhelpers.AssertHTMLContains(t, body, "BA13 sur rails")
	testhelpers.AssertHTMLContains(t, body, "32,00")
}

func TestHandleCatalogPicker_ShowsComposedPrice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newQuoteWithDocument(t, app)

	chapter := testhelpers.CreateTestCatalogChapter(t, app, "Gros œuvre", "structural")
	sub := testhelpers.CreateTestCatalogSubChapter(t, app, chapter.Id, "Fondations")
	line := testhelpers.CreateTestCatalogLine(t, app, sub.Id, "Béton de propreté", 0)
	line.Set("labor_cost", 45)
	line.Set("material_cost", 95)
	line.Set("fixed_rate_percent", 10)
	line.Set("margin_percent", 20)
	if err := app.Save(line); err != nil {
		t.Fatalf("failed to update catalog line: %v", err)
	}

	handler := HandleCatalogPicker(app)
	req := httptest.NewRequest(http.MethodGet, "/quotes/"+quote.Id+"/catalog-picker", nil)
	req.SetPathValue("quoteId", quote.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// (45+95) × 1.10 × 1.20 = 184.80
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "184,80")
	testhelpers.AssertHTMLContains(t, body, "Béton de propreté")
}

func TestHandleCatalogPicker_UnknownQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCatalogPicker(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/nope/catalog-picker", nil)
	req.SetPathValue("quoteId", "nope")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
