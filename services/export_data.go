package services

// ExportRow represents a single row in a quote export (chapter, subchapter,
// detail line or adjustment line), in document order.
type ExportRow struct {
	Level        int // 0 = chapter, 1 = subchapter, 2 = detail/adjustment line
	Numero       string
	Description  string
	Quantity     float64
	Unit         string
	UnitPrice    float64
	Amount       float64 // line total, scope final, or signed adjustment amount
	IsAdjustment bool
	IsContainer  bool
}

// ExportData holds everything the PDF and Excel generators need.
type ExportData struct {
	Title           string
	ReferenceNumber string
	ClientName      string
	CreatedDate     string
	Rows            []ExportRow
	GlobalBrute     float64
	GlobalTotal     float64
}

// BuildExportData flattens an ordered document into export rows with fully
// recomputed amounts. Containers carry their final scope totals; adjustment
// rows carry their signed amounts (display lines show the raw amount).
func BuildExportData(title, reference, client, createdDate string, items []Item, catalog Catalog) ExportData {
	totals := ComputeTotals(items, catalog)

	var rows []ExportRow
	for _, it := range SortByIndexGlobal(ResolveNumbering(items)) {
		switch it.Type {
		case ItemChapter:
			rows = append(rows, ExportRow{
				Level:       0,
				Numero:      it.Numero,
				Description: it.Title,
				Amount:      totals.ChapterFinal[it.ID],
				IsContainer: true,
			})
		case ItemSubChapter:
			rows = append(rows, ExportRow{
				Level:       1,
				Numero:      it.Numero,
				Description: it.Description,
				Amount:      totals.SubChapterFinal[it.ID],
				IsContainer: true,
			})
		case ItemDetailLine:
			rows = append(rows, ExportRow{
				Level:       2,
				Numero:      it.Numero,
				Description: it.Description,
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				UnitPrice:   ResolveUnitPrice(it, catalog),
				Amount:      LineTotal(it, catalog),
			})
		case ItemAdjustment:
			amount := SignedAmount(it, totals.Brute)
			if it.Kind == KindDisplay {
				amount = AdjustmentAmount(it, totals.Brute)
			}
			rows = append(rows, ExportRow{
				Level:        adjustmentLevel(it.Scope),
				Description:  it.Description,
				Amount:       amount,
				IsAdjustment: true,
			})
		}
	}

	return ExportData{
		Title:           title,
		ReferenceNumber: reference,
		ClientName:      client,
		CreatedDate:     createdDate,
		Rows:            rows,
		GlobalBrute:     totals.Brute.Global,
		GlobalTotal:     totals.GlobalFinal,
	}
}

func adjustmentLevel(scope AdjustmentScope) int {
	switch scope {
	case ScopeChapter:
		return 1
	case ScopeSubChapter:
		return 2
	}
	return 0
}
