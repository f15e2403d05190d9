package handlers

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteDelete returns a handler that deletes a quote and re-renders
// the list.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("quoteId"))
		if err != nil {
			return e.String(404, "Quote not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_delete: could not delete quote %s: %v", record.Id, err)
			return ErrorToast(e, 500, "Could not delete quote")
		}

		removedRecurring.Reset(record.Id)

		SetToast(e, "success", "Quote deleted")
		return HandleQuoteList(app)(e)
	}
}
