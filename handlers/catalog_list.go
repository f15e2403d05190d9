package handlers

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
	"quotedesk/templates"
)

// buildCatalogViews loads the whole catalog tree for the browsing page and
// the picker.
func buildCatalogViews(app *pocketbase.PocketBase) ([]templates.CatalogChapterView, error) {
	chaptersCol, err := app.FindCollectionByNameOrId("catalog_chapters")
	if err != nil {
		return nil, err
	}
	chapters, err := app.FindAllRecords(chaptersCol)
	if err != nil {
		return nil, err
	}

	subsCol, err := app.FindCollectionByNameOrId("catalog_subchapters")
	if err != nil {
		return nil, err
	}
	linesCol, err := app.FindCollectionByNameOrId("catalog_lines")
	if err != nil {
		return nil, err
	}

	var out []templates.CatalogChapterView
	for _, ch := range chapters {
		chView := templates.CatalogChapterView{
			ID:       ch.Id,
			Title:    ch.GetString("title"),
			Activity: ch.GetString("activity"),
		}

		subs, err := app.FindRecordsByFilter(subsCol, "chapter = {:chapterId}", "", 0, 0, map[string]any{"chapterId": ch.Id})
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			subView := templates.CatalogSubView{
				ID:          sub.Id,
				Description: sub.GetString("description"),
			}

			lines, err := app.FindRecordsByFilter(linesCol, "subchapter = {:subId}", "", 0, 0, map[string]any{"subId": sub.Id})
			if err != nil {
				return nil, err
			}
			for _, l := range lines {
				subView.Lines = append(subView.Lines, templates.CatalogLineView{
					ID:          l.Id,
					Designation: l.GetString("designation"),
					Unit:        l.GetString("unit"),
					Price:       services.FormatEUR(catalogLinePrice(l)),
				})
			}
			chView.Subs = append(chView.Subs, subView)
		}
		out = append(out, chView)
	}
	return out, nil
}

// catalogLinePrice shows the effective default price of a catalog line: the
// composed cost price when costs are present, else the base price.
func catalogLinePrice(rec *core.Record) float64 {
	probe := services.Item{
		Type:         services.ItemDetailLine,
		LaborCost:    rec.GetFloat("labor_cost"),
		MaterialCost: rec.GetFloat("material_cost"),
	}
	catalog := services.Catalog{
		"": services.CatalogPricing{
			BasePrice:        rec.GetFloat("base_price"),
			FixedRatePercent: rec.GetFloat("fixed_rate_percent"),
			MarginPercent:    rec.GetFloat("margin_percent"),
		},
	}
	return services.ResolveUnitPrice(probe, catalog)
}

// HandleCatalogPage returns a handler that renders the read-only catalog
// browsing page.
func HandleCatalogPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		chapters, err := buildCatalogViews(app)
		if err != nil {
			log.Printf("catalog: could not load catalog: %v", err)
			return e.String(500, "Internal error")
		}
		return templates.CatalogPage(templates.CatalogPageData{Chapters: chapters}).Render(e.Request.Context(), e.Response)
	}
}

// HandleCatalogPicker returns a handler that renders the catalog picker
// modal for a quote.
func HandleCatalogPicker(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		if _, err := app.FindRecordById("quotes", quoteID); err != nil {
			return e.String(404, "Quote not found")
		}

		chapters, err := buildCatalogViews(app)
		if err != nil {
			log.Printf("catalog_picker: could not load catalog: %v", err)
			return e.String(500, "Internal error")
		}
		data := templates.CatalogPickerData{QuoteID: quoteID, Chapters: chapters}
		return templates.CatalogPicker(data).Render(e.Request.Context(), e.Response)
	}
}
