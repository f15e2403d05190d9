package handlers

import (
	"errors"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// HandleReorder moves an item (and, for containers, its whole subtree)
// between the two drop neighbors named by the form. Dropping a container
// inside its own subtree is rejected with a 400 toast before anything moves.
func HandleReorder(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withQuoteDocument(app, e, "reorder", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			if err := e.Request.ParseForm(); err != nil {
				return nil, errors.New("invalid form data")
			}

			movedID := e.Request.FormValue("moved")
			prevID := e.Request.FormValue("prev")
			nextID := e.Request.FormValue("next")

			h := services.BuildHierarchy(items)
			if _, ok := h.Item(movedID); !ok {
				return nil, errors.New("item not found in this document")
			}

			// A container cannot land inside its own subtree.
			if prevID != "" && (prevID == movedID || h.IsDescendantOf(prevID, movedID)) ||
				nextID != "" && (nextID == movedID || h.IsDescendantOf(nextID, movedID)) {
				return nil, errors.New("cannot move an item inside itself")
			}

			return services.ReorderAfterDrag(items, movedID, prevID, nextID), nil
		})
	}
}
