package handlers

import (
	"encoding/json"
	"testing"

	"quotedesk/services"
	"quotedesk/testhelpers"
)

func TestRecalcAllQuotes_RefreshesStoredAmounts(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Stored totals lie; only structure and quantities are trusted.
	doc := testhelpers.SimpleQuoteDocument()
	doc.GlobalTotal = 99999
	doc.Lines[0].ResolvedPrice = 1
	quote := testhelpers.CreateTestQuote(t, app, "Devis périmé", doc)
	quote.Set("total_ht", 99999)
	if err := app.Save(quote); err != nil {
		t.Fatalf("failed to seed stale total: %v", err)
	}

	if err := RecalcAllQuotes(app); err != nil {
		t.Fatalf("recalc error: %v", err)
	}

	record, err := app.FindRecordById("quotes", quote.Id)
	if err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if got := record.GetFloat("total_ht"); got != 480 {
		t.Errorf("total_ht = %v, want 480", got)
	}

	stored := testhelpers.QuoteDocumentOf(t, record)
	if stored.GlobalTotal != 480 {
		t.Errorf("global_total = %v, want 480", stored.GlobalTotal)
	}
	if got := stored.Lines[0].ResolvedPrice; got != 120 {
		t.Errorf("resolved_price = %v, want 120", got)
	}
}

func TestRecalcAllQuotes_SkipsBrokenDocuments(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	good := newQuoteWithDocument(t, app)

	// Two cumulative total lines fail reference validation on load.
	broken := testhelpers.SimpleQuoteDocument()
	broken.Adjustments.Global = []services.PersistedAdjustment{
		{ID: "rec1", Kind: services.KindDisplay, ValueType: services.ValueFixed, IsRecurring: true},
		{ID: "rec2", Kind: services.KindDisplay, ValueType: services.ValueFixed, IsRecurring: true},
	}
	raw, err := json.Marshal(broken)
	if err != nil {
		t.Fatalf("marshal broken document: %v", err)
	}
	rec2 := testhelpers.CreateTestQuote(t, app, "Devis cassé", services.PersistedDocument{})
	rec2.Set("document", string(raw))
	if err := app.Save(rec2); err != nil {
		t.Fatalf("failed to store broken document: %v", err)
	}

	if err := RecalcAllQuotes(app); err == nil {
		t.Error("expected an error when a quote fails to recompute")
	}

	// The healthy quote was still recomputed.
	record, _ := app.FindRecordById("quotes", good.Id)
	if got := record.GetFloat("total_ht"); got != 480 {
		t.Errorf("total_ht = %v, want 480", got)
	}
}
