package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
	"quotedesk/templates"
)

// HandleQuoteList returns a handler that renders the quote list page.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_list: could not find quotes collection: %v", err)
			return e.String(500, "Internal error")
		}

		records, err := app.FindAllRecords(col)
		if err != nil {
			log.Printf("quote_list: could not query quotes: %v", err)
			return e.String(500, "Internal error")
		}

		var items []templates.QuoteListItem
		var sum float64
		for _, rec := range records {
			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02/01/2006")
			}

			total := rec.GetFloat("total_ht")
			sum += total

			items = append(items, templates.QuoteListItem{
				ID:          rec.Id,
				Title:       rec.GetString("title"),
				RefNumber:   rec.GetString("reference_number"),
				Client:      rec.GetString("client"),
				CreatedDate: createdDate,
				Total:       services.FormatEUR(total),
			})
		}

		data := templates.QuoteListData{
			Items:       items,
			TotalQuotes: len(records),
			SumTotal:    services.FormatEUR(sum),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteListContent(data)
		} else {
			component = templates.QuoteListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
