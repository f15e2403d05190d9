package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// withQuoteDocument loads the quote, its document and the catalog, applies
// mutate and runs the full recompute-save-rerender pipeline. Validation
// failures roll back to a 400 toast without persisting anything.
func withQuoteDocument(app *pocketbase.PocketBase, e *core.RequestEvent, feature string,
	mutate func(items []services.Item, catalog services.Catalog) ([]services.Item, error)) error {

	record, err := app.FindRecordById("quotes", e.Request.PathValue("quoteId"))
	if err != nil {
		return e.String(404, "Quote not found")
	}

	items, err := loadQuoteItems(record)
	if err != nil {
		log.Printf("%s: could not load document of quote %s: %v", feature, record.Id, err)
		return e.String(500, "Internal error")
	}
	catalog, err := loadCatalog(app)
	if err != nil {
		log.Printf("%s: could not load catalog: %v", feature, err)
		return e.String(500, "Internal error")
	}

	items, err = mutate(items, catalog)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return ErrorToast(e, 400, msg)
		}
		return ErrorToast(e, 400, err.Error())
	}

	if err := storeQuoteItems(app, record, items, catalog); err != nil {
		if msg, ok := validationMessage(err); ok {
			return ErrorToast(e, 400, msg)
		}
		log.Printf("%s: could not save quote %s: %v", feature, record.Id, err)
		return ErrorToast(e, 500, "Could not save quote")
	}

	return renderQuoteTable(e, record, items, catalog)
}

// HandleAddChapter appends a chapter to the document. The first chapter add
// also creates the cumulative total line, unless the user removed it during
// this session.
func HandleAddChapter(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		return withQuoteDocument(app, e, "item_add", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			title := strings.TrimSpace(e.Request.FormValue("title"))
			if title == "" {
				title = "Nouveau chapitre"
			}
			activity := services.ActivityKind(e.Request.FormValue("activity"))
			if activity == "" {
				activity = services.ActivityGeneral
			}

			chapter := services.Item{
				ID:       uuid.NewString(),
				Type:     services.ItemChapter,
				Title:    title,
				Activity: activity,
			}
			items = services.InsertAtPosition(items, chapter, services.DocumentEnd())

			if _, ok := services.FindRecurringLine(items); !ok && !removedRecurring.Removed(quoteID) {
				items = services.InsertAtPosition(items, services.NewRecurringLine(), services.DocumentEnd())
			}
			return items, nil
		})
	}
}

// HandleAddSubChapter appends a subchapter at the end of its chapter's
// subtree.
func HandleAddSubChapter(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withQuoteDocument(app, e, "item_add", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			chapterID := e.Request.FormValue("chapter")
			h := services.BuildHierarchy(items)
			if parent, ok := h.Item(chapterID); !ok || parent.Type != services.ItemChapter {
				return nil, errInvalidParent("chapter", chapterID)
			}

			description := strings.TrimSpace(e.Request.FormValue("description"))
			if description == "" {
				description = "Nouveau sous-chapitre"
			}

			sub := services.Item{
				ID:              uuid.NewString(),
				Type:            services.ItemSubChapter,
				Description:     description,
				ParentChapterID: chapterID,
			}
			return services.InsertAtPosition(items, sub, services.ScopeEnd(chapterID)), nil
		})
	}
}

// HandleAddDetailLine appends an inline (non-catalog) detail line at the end
// of its subchapter's subtree.
func HandleAddDetailLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withQuoteDocument(app, e, "item_add", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			subID := e.Request.FormValue("subchapter")
			h := services.BuildHierarchy(items)
			if parent, ok := h.Item(subID); !ok || parent.Type != services.ItemSubChapter {
				return nil, errInvalidParent("subchapter", subID)
			}

			qty := 1.0
			if v := e.Request.FormValue("quantity"); v != "" {
				parsed, err := strconv.ParseFloat(v, 64)
				if err != nil || parsed < 0 {
					return nil, errBadNumber("quantity", v)
				}
				qty = parsed
			}

			unit := e.Request.FormValue("unit")
			if unit == "" {
				unit = "u"
			}

			line := services.Item{
				ID:                 uuid.NewString(),
				Type:               services.ItemDetailLine,
				Description:        strings.TrimSpace(e.Request.FormValue("designation")),
				ParentSubChapterID: subID,
				Quantity:           qty,
				Unit:               unit,
			}
			if v := e.Request.FormValue("price"); v != "" {
				parsed, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, errBadNumber("price", v)
				}
				line.OverridePrice = &parsed
			}
			return services.InsertAtPosition(items, line, services.ScopeEnd(subID)), nil
		})
	}
}

// HandleAddAdjustment appends an adjustment line inside its scope: at the
// end of the scoped container's subtree, or at the document end for global
// lines.
func HandleAddAdjustment(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withQuoteDocument(app, e, "item_add", func(items []services.Item, catalog services.Catalog) ([]services.Item, error) {
			scope := services.AdjustmentScope(e.Request.FormValue("scope"))
			if scope == "" {
				scope = services.ScopeGlobal
			}
			scopeID := e.Request.FormValue("scope_id")

			kind := services.AdjustmentKind(e.Request.FormValue("kind"))
			if kind == "" {
				kind = services.KindReduction
			}
			valueType := services.ValueType(e.Request.FormValue("value_type"))
			if valueType == "" {
				valueType = services.ValueFixed
			}

			var value float64
			if v := e.Request.FormValue("value"); v != "" {
				parsed, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, errBadNumber("value", v)
				}
				value = parsed
			}

			adj := services.Item{
				ID:          uuid.NewString(),
				Type:        services.ItemAdjustment,
				Description: strings.TrimSpace(e.Request.FormValue("description")),
				Scope:       scope,
				ScopeID:     scopeID,
				Kind:        kind,
				ValueType:   valueType,
				Value:       value,
			}
			if valueType == services.ValuePercentage {
				adj.BaseScope = services.AdjustmentScope(e.Request.FormValue("base_scope"))
				adj.BaseScopeID = e.Request.FormValue("base_scope_id")
				if adj.BaseScope == "" {
					// Default: the line's own scope base.
					adj.BaseScope = scope
					adj.BaseScopeID = scopeID
				}
			}

			pos := services.DocumentEnd()
			if scope != services.ScopeGlobal {
				pos = services.ScopeEnd(scopeID)
			}
			return services.InsertAtPosition(items, adj, pos), nil
		})
	}
}
