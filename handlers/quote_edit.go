package handlers

import (
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/templates"
)

// HandleQuoteEditForm returns a handler that renders the quote metadata form
// pre-filled from the record.
func HandleQuoteEditForm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("quoteId"))
		if err != nil {
			return e.String(404, "Quote not found")
		}

		data := templates.QuoteFormData{
			ID:        record.Id,
			Title:     record.GetString("title"),
			RefNumber: record.GetString("reference_number"),
			Client:    record.GetString("client"),
		}
		return templates.QuoteForm(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteUpdate returns a handler that updates the quote metadata.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("quoteId"))
		if err != nil {
			return e.String(404, "Quote not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, 400, "Invalid form data")
		}

		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			return ErrorToast(e, 400, "Title is required")
		}

		record.Set("title", title)
		record.Set("reference_number", strings.TrimSpace(e.Request.FormValue("reference_number")))
		record.Set("client", strings.TrimSpace(e.Request.FormValue("client")))

		if err := app.Save(record); err != nil {
			log.Printf("quote_edit: could not save quote %s: %v", record.Id, err)
			return ErrorToast(e, 500, "Could not save quote")
		}

		SetToast(e, "success", "Quote updated")
		return HandleQuoteList(app)(e)
	}
}
