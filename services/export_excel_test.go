package services

import (
	"bytes"
	"io"
	"testing"

	"github.com/xuri/excelize/v2"
)

func bytesReader(b []byte) io.Reader { return bytes.NewReader(b) }

func TestGenerateExcel_BasicQuote(t *testing.T) {
	data := ExportData{
		Title:           "Villa renovation",
		ReferenceNumber: "Q-2024-001",
		CreatedDate:     "2024-03-15",
		Rows: []ExportRow{
			{Level: 0, Numero: "1", Description: "Structural works", Amount: 332, IsContainer: true},
			{Level: 1, Numero: "1.1", Description: "Foundations", Amount: 232, IsContainer: true},
			{Level: 2, Numero: "1.1.1", Description: "Concrete slab", Quantity: 2, Unit: "m²", UnitPrice: 50, Amount: 100},
		},
		GlobalBrute: 332,
		GlobalTotal: 332,
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	// Verify it's a valid Excel file
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Villa renovation" {
		t.Errorf("expected sheet name 'Villa renovation', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Villa renovation" {
		t.Errorf("expected title 'Villa renovation', got %q", title)
	}
}

func TestGenerateExcel_EmptyRows(t *testing.T) {
	data := ExportData{
		Title:       "Empty quote",
		CreatedDate: "2024-03-15",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_LongTitle(t *testing.T) {
	data := ExportData{
		Title:       "This is a very long title that exceeds thirty one characters",
		CreatedDate: "2024-03-15",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets[0]) > 31 {
		t.Errorf("sheet name exceeds 31 chars: %d", len(sheets[0]))
	}
}

func TestGenerateExcel_EmptyTitle(t *testing.T) {
	data := ExportData{
		Title:       "",
		CreatedDate: "2024-03-15",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheets[0] != "Quote" {
		t.Errorf("expected default sheet name 'Quote', got %q", sheets[0])
	}
}

func TestGenerateExcel_LevelIndentation(t *testing.T) {
	data := ExportData{
		Title:       "Hierarchy",
		CreatedDate: "2024-03-15",
		Rows: []ExportRow{
			{Level: 0, Numero: "1", Description: "Chapter", IsContainer: true},
			{Level: 1, Numero: "1.1", Description: "SubChapter", IsContainer: true},
			{Level: 2, Numero: "1.1.1", Description: "Line", Quantity: 3, Unit: "u"},
		},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]

	// Row 6 = first data row, B6 = designation
	chapterDesc, _ := f.GetCellValue(sheet, "B6")
	subDesc, _ := f.GetCellValue(sheet, "B7")
	lineDesc, _ := f.GetCellValue(sheet, "B8")

	if chapterDesc != "Chapter" {
		t.Errorf("chapter desc = %q, want 'Chapter'", chapterDesc)
	}
	if subDesc != "  SubChapter" {
		t.Errorf("subchapter desc = %q, want '  SubChapter'", subDesc)
	}
	if lineDesc != "    Line" {
		t.Errorf("line desc = %q, want '    Line'", lineDesc)
	}

	// Containers carry no quantity or unit price.
	chQty, _ := f.GetCellValue(sheet, "C6")
	if chQty != "" {
		t.Errorf("chapter quantity cell = %q, want empty", chQty)
	}
	lineQty, _ := f.GetCellValue(sheet, "C8")
	if lineQty != "3" {
		t.Errorf("line quantity cell = %q, want '3'", lineQty)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Hello", "Hello"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}

	sides := map[string]bool{"left": false, "top": false, "bottom": false, "right": false}
	for _, b := range borders {
		sides[b.Type] = true
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
	for side, found := range sides {
		if !found {
			t.Errorf("missing border side: %s", side)
		}
	}
}
