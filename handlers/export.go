package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// buildExportData loads the quote and flattens its recomputed document into
// export rows.
func buildExportData(app *pocketbase.PocketBase, quoteID string) (services.ExportData, error) {
	record, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("quote not found: %w", err)
	}

	items, err := loadQuoteItems(record)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("load document of quote %s: %w", quoteID, err)
	}
	catalog, err := loadCatalog(app)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("load catalog: %w", err)
	}

	items = services.ResolveRecurringValue(items, catalog)

	createdDate := "—"
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02/01/2006")
	}

	return services.BuildExportData(
		record.GetString("title"),
		record.GetString("reference_number"),
		record.GetString("client"),
		createdDate,
		items,
		catalog,
	), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuoteExportExcel returns a handler that generates and downloads an Excel file for a quote.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildExportData(app, quoteID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Devis_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF returns a handler that generates and downloads a PDF file for a quote.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("quoteId")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildExportData(app, quoteID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Devis_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
