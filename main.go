package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"quotedesk/collections"
	"quotedesk/handlers"
)

func main() {
	app := pocketbase.New()

	app.RootCmd.AddCommand(recalcCmd(app))

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Quote CRUD ───────────────────────────────────────────
		se.Router.GET("/quotes", handlers.HandleQuoteList(app))
		se.Router.GET("/quotes/new", handlers.HandleQuoteNew(app))
		se.Router.POST("/quotes", handlers.HandleQuoteSave(app))
		se.Router.GET("/quotes/{quoteId}/edit", handlers.HandleQuoteEditForm(app))
		se.Router.POST("/quotes/{quoteId}/edit", handlers.HandleQuoteUpdate(app))
		se.Router.DELETE("/quotes/{quoteId}", handlers.HandleQuoteDelete(app))

		// ── Document item operations ─────────────────────────────
		se.Router.POST("/quotes/{quoteId}/items/chapter", handlers.HandleAddChapter(app))
		se.Router.POST("/quotes/{quoteId}/items/subchapter", handlers.HandleAddSubChapter(app))
		se.Router.POST("/quotes/{quoteId}/items/line", handlers.HandleAddDetailLine(app))
		se.Router.POST("/quotes/{quoteId}/items/adjustment", handlers.HandleAddAdjustment(app))

		se.Router.POST("/quotes/{quoteId}/items/catalog-chapter/{chapterId}", handlers.HandleInsertCatalogChapter(app))
		se.Router.POST("/quotes/{quoteId}/items/catalog-subchapter/{subChapterId}", handlers.HandleInsertCatalogSubChapter(app))
		se.Router.POST("/quotes/{quoteId}/items/catalog-line/{lineId}", handlers.HandleInsertCatalogLine(app))

		se.Router.PATCH("/quotes/{quoteId}/items/{itemId}", handlers.HandleItemPatch(app))
		se.Router.DELETE("/quotes/{quoteId}/items/{itemId}", handlers.HandleItemDelete(app))
		se.Router.POST("/quotes/{quoteId}/reorder", handlers.HandleReorder(app))

		// ── Partials and exports ─────────────────────────────────
		se.Router.GET("/quotes/{quoteId}/totals", handlers.HandleQuoteTotals(app))
		se.Router.GET("/quotes/{quoteId}/catalog-picker", handlers.HandleCatalogPicker(app))
		se.Router.GET("/quotes/{quoteId}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.GET("/quotes/{quoteId}/export/pdf", handlers.HandleQuoteExportPDF(app))

		// Quote view (after the specific /quotes/{quoteId}/* routes)
		se.Router.GET("/quotes/{quoteId}", handlers.HandleQuoteView(app))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/catalog", handlers.HandleCatalogPage(app))

		// Redirect home to the quote list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotes")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// recalcCmd rebuilds every stored quote document through the full recompute
// pipeline and rewrites the derived totals. Useful after catalog price
// changes or an engine upgrade.
func recalcCmd(app *pocketbase.PocketBase) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc",
		Short: "Recompute every quote document and its stored totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return err
			}
			collections.Setup(app)

			return handlers.RecalcAllQuotes(app)
		},
	}
}
