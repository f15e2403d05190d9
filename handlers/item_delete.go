package handlers

import (
	"errors"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// HandleItemDelete removes one item from the quote document. Deleting a
// container cascades to its whole subtree, scoped adjustment lines included.
// Deleting the cumulative total line marks it removed for this session so
// chapter adds stop re-creating it.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		return withQuoteDocument(app, e, "item_delete", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			itemID := e.Request.PathValue("itemId")

			idx := -1
			for i := range items {
				if items[i].ID == itemID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, errors.New("item not found in this document")
			}

			if items[idx].IsRecurring {
				removedRecurring.Mark(quoteID)
			}

			return services.CascadeDelete(items, itemID), nil
		})
	}
}
