package handlers

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// RecalcAllQuotes pushes every stored quote through the full recompute
// pipeline: load, renumber, resolve the cumulative line, revalidate and save
// with fresh amounts. Quotes that no longer validate are reported and
// skipped, never half-written.
func RecalcAllQuotes(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("recalc: find quotes collection: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("recalc: query quotes: %w", err)
	}

	catalog, err := loadCatalog(app)
	if err != nil {
		return fmt.Errorf("recalc: %w", err)
	}

	var failed int
	for _, record := range records {
		items, err := loadQuoteItems(record)
		if err != nil {
			log.Printf("recalc: quote %s (%s): %v", record.Id, record.GetString("title"), err)
			failed++
			continue
		}
		if err := storeQuoteItems(app, record, items, catalog); err != nil {
			log.Printf("recalc: quote %s (%s): %v", record.Id, record.GetString("title"), err)
			failed++
			continue
		}
	}

	log.Printf("recalc: %d quotes recomputed, %d failed", len(records)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("recalc: %d quotes failed", failed)
	}
	return nil
}
