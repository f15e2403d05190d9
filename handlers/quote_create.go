package handlers

import (
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/templates"
)

// HandleQuoteNew returns a handler that renders the new-quote form.
func HandleQuoteNew(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return templates.QuoteForm(templates.QuoteFormData{}).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteSave returns a handler that creates a quote from the form and
// re-renders the list.
func HandleQuoteSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, 400, "Invalid form data")
		}

		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			return ErrorToast(e, 400, "Title is required")
		}

		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return e.String(500, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("title", title)
		record.Set("reference_number", strings.TrimSpace(e.Request.FormValue("reference_number")))
		record.Set("client", strings.TrimSpace(e.Request.FormValue("client")))

		// New quotes start as an empty draft document.
		if err := storeQuoteItems(app, record, nil, nil); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return ErrorToast(e, 500, "Could not save quote")
		}

		SetToast(e, "success", "Quote created")
		return HandleQuoteList(app)(e)
	}
}
