package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
	"quotedesk/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newFormRequest builds a form-encoded request with the HX-Request header.
func newFormRequest(method, target string, form url.Values) *http.Request {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

// quoteItemsOf reloads the stored document of a quote as the flat item list.
func quoteItemsOf(t *testing.T, app *pocketbase.PocketBase, quoteID string) []services.Item {
	t.Helper()

	record, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		t.Fatalf("failed to reload quote %s: %v", quoteID, err)
	}
	items, err := loadQuoteItems(record)
	if err != nil {
		t.Fatalf("failed to load document of quote %s: %v", quoteID, err)
	}
	return items
}

// itemOfType returns the first stored item of the given type, failing the
// test when absent.
func itemOfType(t *testing.T, items []services.Item, typ services.ItemType) services.Item {
	t.Helper()

	for _, it := range items {
		if it.Type == typ {
			return it
		}
	}
	t.Fatalf("no item of type %s in document", typ)
	return services.Item{}
}

func countType(items []services.Item, typ services.ItemType) int {
	n := 0
	for _, it := range items {
		if it.Type == typ {
			n++
		}
	}
	return n
}

// newQuoteWithDocument creates a quote holding the simple one-line document.
func newQuoteWithDocument(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()
	return testhelpers.CreateTestQuote(t, app, "Test quote", testhelpers.SimpleQuoteDocument())
}
