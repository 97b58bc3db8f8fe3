package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel creates an Excel workbook from estimate export
// data and returns the file contents.
func GenerateEstimateExcel(data *EstimateExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars by the format.
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 12, 40, 22, 10, 10, 8, 16, 16, 30}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	totalLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total label style: %w", err)
	}

	totalValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create total value style: %w", err)
	}

	// Header rows 1-3: title, number, block + date.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.Number != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge number: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "No: "+data.Number)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge subtitle: %w", err)
	}
	subtitle := "Date: " + data.CreatedDate
	if data.BlockName != "" {
		subtitle = "Block: " + data.BlockName + "    " + subtitle
	}
	f.SetCellValue(sheetName, "A3", subtitle)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// Row 5: column headers.
	headers := []string{"#", "Type", "Name", "Subsection", "Qty", "UoM", "Coef", "Price", "Total", "Comment"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// Data rows from row 6.
	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		f.SetCellValue(sheetName, "B"+rowStr, r.ItemType)
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Name))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Subsection))
		f.SetCellValue(sheetName, "E"+rowStr, r.Qty)
		f.SetCellValue(sheetName, "F"+rowStr, sanitizeExcelCell(r.UoM))
		f.SetCellValue(sheetName, "G"+rowStr, r.Coef)
		f.SetCellValue(sheetName, "H"+rowStr, FormatMoney(r.Price, r.Currency))
		f.SetCellValue(sheetName, "I"+rowStr, FormatMoney(r.Total, r.Currency))
		f.SetCellValue(sheetName, "J"+rowStr, sanitizeExcelCell(r.Comment))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)
		row++
	}

	// Grand total after a blank row.
	row++
	totalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "H"+totalRow, "Grand Total:")
	f.SetCellStyle(sheetName, "H"+totalRow, "H"+totalRow, totalLabelStyle)
	f.SetCellValue(sheetName, "I"+totalRow, FormatMoney(data.GrandTotal, ""))
	f.SetCellStyle(sheetName, "I"+totalRow, "I"+totalRow, totalValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns excelize borders for thin lines on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
