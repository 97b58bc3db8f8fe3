package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded
// material reference file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// materialImportColumns are the recognised upload columns, in template
// order. name, material_type and unit_of_measure are required.
var materialImportColumns = []struct {
	Key      string
	Label    string
	Required bool
}{
	{"name", "Name", true},
	{"material_type", "Material Type", true},
	{"unit_of_measure", "Unit of Measure", true},
	{"code", "Code", false},
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToColumns maps uploaded column headers to import column keys.
// Returns one key per column ("" for unrecognized columns).
func mapHeadersToColumns(headers []string) []string {
	labelToKey := make(map[string]string, len(materialImportColumns))
	for _, c := range materialImportColumns {
		labelToKey[strings.ToLower(c.Label)] = c.Key
		labelToKey[c.Key] = c.Key
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)
		mapped[i] = labelToKey[norm]
	}
	return mapped
}

// ValidateMaterialFile parses and validates an uploaded material
// reference file (.csv or .xlsx). Material types and units are matched
// by name against the existing reference collections; unknown ones are
// reported as row errors rather than created implicitly.
func ValidateMaterialFile(
	app *pocketbase.PocketBase,
	file multipart.File,
	fileName string,
) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapHeadersToColumns(headers)

	typeIDs, err := loadNameIndex(app, "material_types")
	if err != nil {
		return nil, fmt.Errorf("load material types: %w", err)
	}
	unitIDs, err := loadUnitIndex(app)
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		for _, c := range materialImportColumns {
			if c.Required && rowData[c.Key] == "" {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   c.Label,
					Message: fmt.Sprintf("%s is required", c.Label),
				})
			}
		}

		if name := rowData["material_type"]; name != "" {
			if id, ok := typeIDs[strings.ToLower(name)]; ok {
				rowData["material_type_id"] = id
			} else {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "Material Type",
					Message: fmt.Sprintf("unknown material type %q", name),
				})
			}
		}

		if name := rowData["unit_of_measure"]; name != "" {
			if id, ok := unitIDs[strings.ToLower(name)]; ok {
				rowData["unit_of_measure_id"] = id
			} else {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "Unit of Measure",
					Message: fmt.Sprintf("unknown unit %q", name),
				})
			}
		}

		if len(rowErrors) > 0 {
			result.ErrorRows++
			result.Errors = append(result.Errors, rowErrors...)
		} else {
			result.ValidRows++
		}
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	return result, nil
}

// loadNameIndex builds a lowercase name -> id index for a collection.
func loadNameIndex(app *pocketbase.PocketBase, collection string) (map[string]string, error) {
	records, err := app.FindAllRecords(collection)
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(records))
	for _, rec := range records {
		index[strings.ToLower(rec.GetString("name"))] = rec.Id
	}
	return index, nil
}

// loadUnitIndex indexes units by both full name and short name.
func loadUnitIndex(app *pocketbase.PocketBase) (map[string]string, error) {
	records, err := app.FindAllRecords("units")
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(records))
	for _, rec := range records {
		index[strings.ToLower(rec.GetString("name"))] = rec.Id
		if short := rec.GetString("short_name"); short != "" {
			index[strings.ToLower(short)] = rec.Id
		}
	}
	return index, nil
}
