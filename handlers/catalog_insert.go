package handlers

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

var errNoTargetContainer = errors.New("add a chapter to the quote first")

// detailFromCatalog builds a document detail line from a catalog line
// record. Cost attributes are copied onto the line; rates stay behind the
// catalog reference so later catalog edits keep applying.
func detailFromCatalog(rec *core.Record, parentSubID string) services.Item {
	return services.Item{
		ID:                 uuid.NewString(),
		Type:               services.ItemDetailLine,
		Description:        rec.GetString("designation"),
		ParentSubChapterID: parentSubID,
		CatalogLineID:      rec.Id,
		Quantity:           1,
		Unit:               rec.GetString("unit"),
		LaborCost:          rec.GetFloat("labor_cost"),
		MaterialCost:       rec.GetFloat("material_cost"),
	}
}

// lastContainer returns the id of the last container of the given type in
// document order, or "".
func lastContainer(items []services.Item, typ services.ItemType) string {
	id := ""
	for _, it := range services.SortByIndexGlobal(items) {
		if it.Type == typ {
			id = it.ID
		}
	}
	return id
}

// HandleInsertCatalogLine inserts one catalog line into a subchapter of the
// quote. The target subchapter comes from the form, defaulting to the last
// one in the document.
func HandleInsertCatalogLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withQuoteDocument(app, e, "catalog_insert", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			rec, err := app.FindRecordById("catalog_lines", e.Request.PathValue("lineId"))
			if err != nil {
				return nil, errors.New("catalog line not found")
			}

			subID := e.Request.FormValue("subchapter")
			if subID == "" {
				subID = lastContainer(items, services.ItemSubChapter)
			}
			h := services.BuildHierarchy(items)
			if parent, ok := h.Item(subID); !ok || parent.Type != services.ItemSubChapter {
				return nil, errNoTargetContainer
			}

			line := detailFromCatalog(rec, subID)
			return services.InsertAtPosition(items, line, services.ScopeEnd(subID)), nil
		})
	}
}

// HandleInsertCatalogSubChapter inserts a catalog subchapter with all its
// lines into a chapter of the quote.
func HandleInsertCatalogSubChapter(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withQuoteDocument(app, e, "catalog_insert", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			subRec, err := app.FindRecordById("catalog_subchapters", e.Request.PathValue("subChapterId"))
			if err != nil {
				return nil, errors.New("catalog subchapter not found")
			}

			chapterID := e.Request.FormValue("chapter")
			if chapterID == "" {
				chapterID = lastContainer(items, services.ItemChapter)
			}
			h := services.BuildHierarchy(items)
			if parent, ok := h.Item(chapterID); !ok || parent.Type != services.ItemChapter {
				return nil, errNoTargetContainer
			}

			return insertCatalogSubTree(app, items, subRec, chapterID)
		})
	}
}

// HandleInsertCatalogChapter inserts a whole catalog chapter — subchapters
// and lines included — at the end of the quote.
func HandleInsertCatalogChapter(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		return withQuoteDocument(app, e, "catalog_insert", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			chRec, err := app.FindRecordById("catalog_chapters", e.Request.PathValue("chapterId"))
			if err != nil {
				return nil, errors.New("catalog chapter not found")
			}

			chapter := services.Item{
				ID:       uuid.NewString(),
				Type:     services.ItemChapter,
				Title:    chRec.GetString("title"),
				Activity: services.ActivityKind(chRec.GetString("activity")),
			}
			items = services.InsertAtPosition(items, chapter, services.DocumentEnd())

			subsCol, err := app.FindCollectionByNameOrId("catalog_subchapters")
			if err != nil {
				return nil, err
			}
			subs, err := app.FindRecordsByFilter(subsCol, "chapter = {:chapterId}", "", 0, 0, map[string]any{"chapterId": chRec.Id})
			if err != nil {
				return nil, err
			}
			for _, subRec := range subs {
				items, err = insertCatalogSubTree(app, items, subRec, chapter.ID)
				if err != nil {
					return nil, err
				}
			}

			if _, ok := services.FindRecurringLine(items); !ok && !removedRecurring.Removed(quoteID) {
				items = services.InsertAtPosition(items, services.NewRecurringLine(), services.DocumentEnd())
			}
			return items, nil
		})
	}
}

// insertCatalogSubTree appends one catalog subchapter and its lines at the
// end of the target chapter's subtree.
func insertCatalogSubTree(app *pocketbase.PocketBase, items []services.Item, subRec *core.Record, chapterID string) ([]services.Item, error) {
	sub := services.Item{
		ID:              uuid.NewString(),
		Type:            services.ItemSubChapter,
		Description:     subRec.GetString("description"),
		ParentChapterID: chapterID,
	}
	items = services.InsertAtPosition(items, sub, services.ScopeEnd(chapterID))

	linesCol, err := app.FindCollectionByNameOrId("catalog_lines")
	if err != nil {
		return nil, err
	}
	lines, err := app.FindRecordsByFilter(linesCol, "subchapter = {:subId}", "", 0, 0, map[string]any{"subId": subRec.Id})
	if err != nil {
		return nil, err
	}
	for _, lineRec := range lines {
		line := detailFromCatalog(lineRec, sub.ID)
		items = services.InsertAtPosition(items, line, services.ScopeEnd(sub.ID))
	}
	return items, nil
}
