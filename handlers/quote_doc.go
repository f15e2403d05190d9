package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
	"quotedesk/templates"
)

// loadQuoteItems parses the quote record's document field into the flat
// ordered item list. An empty or missing document yields an empty list.
func loadQuoteItems(record *core.Record) ([]services.Item, error) {
	raw := record.GetString("document")
	if raw == "" || raw == "null" || raw == "{}" {
		return nil, nil
	}

	var doc services.PersistedDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse quote document: %w", err)
	}
	return services.LoadDocument(doc)
}

// loadCatalog builds the pricing catalog from the catalog_lines collection.
func loadCatalog(app *pocketbase.PocketBase) (services.Catalog, error) {
	col, err := app.FindCollectionByNameOrId("catalog_lines")
	if err != nil {
		return nil, fmt.Errorf("find catalog_lines collection: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return nil, fmt.Errorf("query catalog_lines: %w", err)
	}

	catalog := make(services.Catalog, len(records))
	for _, rec := range records {
		catalog[rec.Id] = services.CatalogPricing{
			BasePrice:        rec.GetFloat("base_price"),
			FixedRatePercent: rec.GetFloat("fixed_rate_percent"),
			MarginPercent:    rec.GetFloat("margin_percent"),
		}
	}
	return catalog, nil
}

// storeQuoteItems runs the full recompute pipeline (numbering, recurring
// value, validation, totals) and writes the persisted document back onto the
// record. An empty item list is stored as an empty draft document.
func storeQuoteItems(app *pocketbase.PocketBase, record *core.Record, items []services.Item, catalog services.Catalog) error {
	var doc services.PersistedDocument

	if len(items) > 0 {
		items = services.ResolveNumbering(items)
		items = services.ResolveRecurringValue(items, catalog)

		var err error
		doc, err = services.SaveDocument(items, catalog)
		if err != nil {
			return err
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal quote document: %w", err)
	}
	record.Set("document", string(raw))
	record.Set("total_ht", doc.GlobalTotal)
	return app.Save(record)
}

// validationMessage flattens a ValidationError into a single toast message.
func validationMessage(err error) (string, bool) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return strings.Join(verr.Violations, " · "), true
	}
	return "", false
}

// buildQuoteViewData assembles the view model of a quote page from the
// recomputed document.
func buildQuoteViewData(record *core.Record, items []services.Item, catalog services.Catalog) templates.QuoteViewData {
	items = services.ResolveNumbering(items)
	items = services.ResolveRecurringValue(items, catalog)
	totals := services.ComputeTotals(items, catalog)

	var rows []templates.QuoteRowView
	for _, it := range services.SortByIndexGlobal(items) {
		switch it.Type {
		case services.ItemChapter:
			rows = append(rows, templates.QuoteRowView{
				ID: it.ID, Level: 0, Numero: it.Numero, Description: it.Title,
				Amount:      services.FormatEUR(totals.ChapterFinal[it.ID]),
				IsContainer: true,
			})
		case services.ItemSubChapter:
			rows = append(rows, templates.QuoteRowView{
				ID: it.ID, Level: 1, Numero: it.Numero, Description: it.Description,
				Amount:      services.FormatEUR(totals.SubChapterFinal[it.ID]),
				IsContainer: true,
			})
		case services.ItemDetailLine:
			rows = append(rows, templates.QuoteRowView{
				ID: it.ID, Level: 2, Numero: it.Numero, Description: it.Description,
				Qty:       services.FormatQty(it.Quantity),
				Unit:      it.Unit,
				UnitPrice: services.FormatEUR(services.ResolveUnitPrice(it, catalog)),
				Amount:    services.FormatEUR(services.LineTotal(it, catalog)),
			})
		case services.ItemAdjustment:
			amount := services.SignedAmount(it, totals.Brute)
			if it.Kind == services.KindDisplay {
				amount = services.AdjustmentAmount(it, totals.Brute)
			}
			level := 0
			switch it.Scope {
			case services.ScopeChapter:
				level = 1
			case services.ScopeSubChapter:
				level = 2
			}
			rows = append(rows, templates.QuoteRowView{
				ID: it.ID, Level: level, Description: it.Description,
				Amount:       services.FormatEUR(amount),
				IsAdjustment: true,
				IsRecurring:  it.IsRecurring,
			})
		}
	}

	return templates.QuoteViewData{
		ID:          record.Id,
		Title:       record.GetString("title"),
		RefNumber:   record.GetString("reference_number"),
		Client:      record.GetString("client"),
		Rows:        rows,
		GlobalBrute: services.FormatEUR(totals.Brute.Global),
		GlobalTotal: services.FormatEUR(totals.GlobalFinal),
	}
}

// renderQuoteTable re-renders the item table after a mutation.
func renderQuoteTable(e *core.RequestEvent, record *core.Record, items []services.Item, catalog services.Catalog) error {
	data := buildQuoteViewData(record, items, catalog)
	return templates.QuoteTable(data).Render(e.Request.Context(), e.Response)
}
