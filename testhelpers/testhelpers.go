// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/collections"
	"quotedesk/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestQuote creates a quote record holding the given document and
// returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, title string, doc services.PersistedDocument) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal quote document: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("document", string(raw))
	record.Set("total_ht", doc.GlobalTotal)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestCatalogChapter creates a catalog chapter record and returns it.
func CreateTestCatalogChapter(t *testing.T, app *pocketbase.PocketBase, title, activity string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_chapters")
	if err != nil {
		t.Fatalf("failed to find catalog_chapters collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("activity", activity)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog chapter: %v", err)
	}

	return record
}

// CreateTestCatalogSubChapter creates a catalog subchapter under a chapter.
func CreateTestCatalogSubChapter(t *testing.T, app *pocketbase.PocketBase, chapterID, description string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_subchapters")
	if err != nil {
		t.Fatalf("failed to find catalog_subchapters collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("chapter", chapterID)
	record.Set("description", description)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog subchapter: %v", err)
	}

	return record
}

// CreateTestCatalogLine creates a catalog line with a plain base price.
func CreateTestCatalogLine(t *testing.T, app *pocketbase.PocketBase, subChapterID, designation string, basePrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_lines")
	if err != nil {
		t.Fatalf("failed to find catalog_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("subchapter", subChapterID)
	record.Set("designation", designation)
	record.Set("unit", "u")
	record.Set("base_price", basePrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog line: %v", err)
	}

	return record
}

// SimpleQuoteDocument returns a minimal valid persisted document: one
// chapter, one subchapter, one priced detail line.
func SimpleQuoteDocument() services.PersistedDocument {
	return services.PersistedDocument{
		Chapters: []services.PersistedChapter{
			{
				ID: "ch1", Title: "Gros œuvre", Numero: "1", IndexGlobal: 1024,
				SubChapters: []services.PersistedSubChapter{
					{ID: "sub1", Description: "Fondations", Numero: "1.1", IndexGlobal: 2048, DetailLineIDs: []string{"line1"}},
				},
			},
		},
		Lines: []services.PersistedLine{
			{ID: "line1", Designation: "Béton de propreté", Numero: "1.1.1", Quantity: 4, Unit: "m³", OverridePrice: floatPtr(120), IndexGlobal: 3072},
		},
	}
}

// QuoteDocumentOf parses the document JSON field of a quote record.
func QuoteDocumentOf(t *testing.T, record *core.Record) services.PersistedDocument {
	t.Helper()

	var doc services.PersistedDocument
	raw := record.GetString("document")
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("failed to parse quote document: %v", err)
	}
	return doc
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func floatPtr(v float64) *float64 { return &v }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
