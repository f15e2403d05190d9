package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a PDF document from quote export data using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, reference number, client and date to the PDF.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	subtitle := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	subtitleRight := subtitle
	subtitleRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s", data.ReferenceNumber), subtitle),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), subtitleRight),
			),
		),
	)

	if data.ClientName != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Client: %s", data.ClientName), subtitle),
				),
			),
		)
	}

	// Spacer
	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the quote table.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(5).Add(
				text.New("Designation", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Amount", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds a single data row to the quote table, styled by level.
func addTableRow(m core.Maroto, r ExportRow) {
	var cellStyle *props.Cell
	var textSize float64 = 7
	var textStyle fontstyle.Type = fontstyle.Normal
	descPrefix := ""

	switch {
	case r.Level == 0 && r.IsContainer:
		// Chapter: bold on dark-on-white.
		textStyle = fontstyle.Bold
		textSize = 8
	case r.Level == 1 && r.IsContainer:
		// Subchapter: indented, light gray background.
		descPrefix = "  "
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	case r.IsAdjustment:
		// Adjustment line: italic, pale yellow background.
		textStyle = fontstyle.Italic
		descPrefix = "    "
		bg := &props.Color{Red: 252, Green: 248, Blue: 227}
		cellStyle = &props.Cell{BackgroundColor: bg}
	default:
		// Detail line: double-indented.
		descPrefix = "    "
	}

	baseText := props.Text{
		Size:  textSize,
		Style: textStyle,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	qtyStr := ""
	unitPriceStr := ""
	if !r.IsContainer && !r.IsAdjustment {
		qtyStr = FormatQty(r.Quantity)
		unitPriceStr = FormatEUR(r.UnitPrice)
	}

	colNumero := col.New(1).Add(text.New(r.Numero, baseText))
	colDesc := col.New(5).Add(text.New(descPrefix+r.Description, leftText))
	colQty := col.New(1).Add(text.New(qtyStr, rightText))
	colUnit := col.New(1).Add(text.New(r.Unit, baseText))
	colPrice := col.New(2).Add(text.New(unitPriceStr, rightText))
	colAmount := col.New(2).Add(text.New(FormatEUR(r.Amount), rightText))

	if cellStyle != nil {
		colNumero = colNumero.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colPrice = colPrice.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colNumero,
			colDesc,
			colQty,
			colUnit,
			colPrice,
			colAmount,
		),
	)
}

// addSummary adds the subtotal and final total section at the bottom.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Subtotal before adjustments", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatEUR(data.GlobalBrute), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Total", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatEUR(data.GlobalTotal), valueStyle),
			).WithStyle(summaryCell),
		),
	)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
