package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleExportData() *EstimateExportData {
	return &EstimateExportData{
		Title:       "Foundation Works",
		Number:      "EST-B1-26-001",
		BlockName:   "Block A",
		CreatedDate: "01.09.2026",
		Rows: []EstimateExportRow{
			{Index: "1", ItemType: "material", Name: "Cement M500", Subsection: "Foundation", Qty: 10, UoM: "kg", Coef: 1, Price: 50, Currency: "RUB", Total: 500},
			{Index: "2", ItemType: "service", Name: "Concrete pouring", Qty: 2, UoM: "m3", Coef: 1.2, Price: 1000, Currency: "RUB", Total: 2400, Comment: "night shift"},
		},
		GrandTotal: 2900,
	}
}

func TestGenerateEstimateExcel_Basic(t *testing.T) {
	result, err := GenerateEstimateExcel(sampleExportData())
	if err != nil {
		t.Fatalf("GenerateEstimateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimateExcel() returned empty bytes")
	}

	// Verify it's a valid Excel file
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Foundation Works" {
		t.Errorf("expected sheet name 'Foundation Works', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Foundation Works" {
		t.Errorf("expected title 'Foundation Works', got %q", title)
	}
}

func TestGenerateEstimateExcel_EmptyItems(t *testing.T) {
	data := &EstimateExportData{
		Title:       "Empty Estimate",
		CreatedDate: "01.09.2026",
	}

	result, err := GenerateEstimateExcel(data)
	if err != nil {
		t.Fatalf("GenerateEstimateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimateExcel() returned empty bytes")
	}
}

func TestGenerateEstimateExcel_LongTitle(t *testing.T) {
	data := &EstimateExportData{
		Title:       "This is a very long estimate title that exceeds thirty one characters",
		CreatedDate: "01.09.2026",
	}

	result, err := GenerateEstimateExcel(data)
	if err != nil {
		t.Fatalf("GenerateEstimateExcel() error = %v", err)
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

func TestGenerateEstimateExcel_EmptyTitle(t *testing.T) {
	data := &EstimateExportData{CreatedDate: "01.09.2026"}

	result, err := GenerateEstimateExcel(data)
	if err != nil {
		t.Fatalf("GenerateEstimateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheets[0] != "Estimate" {
		t.Errorf("expected fallback sheet name 'Estimate', got %q", sheets[0])
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Cement M500", "Cement M500"},
		{"empty", "", ""},
		{"formula equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"formula plus", "+1+2", "'+1+2"},
		{"formula minus", "-1", "'-1"},
		{"formula at", "@cmd", "'@cmd"},
		{"tab prefix", "\tdata", "'\tdata"},
		{"pipe prefix", "|cmd", "'|cmd"},
		{"inner equals untouched", "a=b", "a=b"},
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
