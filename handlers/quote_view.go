package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/templates"
)

// HandleQuoteView returns a handler that renders the quote detail page with
// its fully recomputed item table.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("quoteId"))
		if err != nil {
			return e.String(404, "Quote not found")
		}

		items, err := loadQuoteItems(record)
		if err != nil {
			log.Printf("quote_view: could not load document of quote %s: %v", record.Id, err)
			return e.String(500, "Internal error")
		}
		catalog, err := loadCatalog(app)
		if err != nil {
			log.Printf("quote_view: could not load catalog: %v", err)
			return e.String(500, "Internal error")
		}

		data := buildQuoteViewData(record, items, catalog)

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteViewContent(data)
		} else {
			component = templates.QuoteViewPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteTotals returns a handler serving the totals footer alone, for
// live refresh.
func HandleQuoteTotals(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("quoteId"))
		if err != nil {
			return e.String(404, "Quote not found")
		}

		items, err := loadQuoteItems(record)
		if err != nil {
			log.Printf("quote_totals: could not load document of quote %s: %v", record.Id, err)
			return e.String(500, "Internal error")
		}
		catalog, err := loadCatalog(app)
		if err != nil {
			log.Printf("quote_totals: could not load catalog: %v", err)
			return e.String(500, "Internal error")
		}

		data := buildQuoteViewData(record, items, catalog)
		return templates.TotalsPartial(data).Render(e.Request.Context(), e.Response)
	}
}
