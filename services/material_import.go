package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const importBatchSize = 100

// ImportResult holds the outcome of a batch import operation.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	RolledBack bool             `json:"rolled_back"`
}

// ImportRowError represents a failure to insert a specific row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CommitMaterialImport inserts parsed material rows into the materials
// collection in chunks of importBatchSize. Within a chunk all inserts
// run in one transaction: a failing row rolls back its chunk, records
// the error and the import continues with the next chunk.
func CommitMaterialImport(
	app *pocketbase.PocketBase,
	parsedRows []map[string]string,
) (*ImportResult, error) {
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return nil, fmt.Errorf("materials collection not found: %w", err)
	}

	result := &ImportResult{TotalRows: len(parsedRows)}

	for chunkStart := 0; chunkStart < len(parsedRows); chunkStart += importBatchSize {
		chunkEnd := chunkStart + importBatchSize
		if chunkEnd > len(parsedRows) {
			chunkEnd = len(parsedRows)
		}
		chunk := parsedRows[chunkStart:chunkEnd]

		chunkErrors := insertMaterialChunk(app, col, chunk, chunkStart)
		if len(chunkErrors) > 0 {
			result.Errors = append(result.Errors, chunkErrors...)
			result.Failed += len(chunk) // entire chunk rolled back
			result.RolledBack = true
		} else {
			result.Imported += len(chunk)
		}
	}

	return result, nil
}

// insertMaterialChunk inserts a batch of rows inside RunInTransaction.
// Any failure aborts and rolls back the whole chunk.
func insertMaterialChunk(
	app *pocketbase.PocketBase,
	col *core.Collection,
	rows []map[string]string,
	startOffset int,
) []ImportRowError {
	var chunkErrors []ImportRowError

	err := app.RunInTransaction(func(txApp core.App) error {
		for i, rowData := range rows {
			rowNum := startOffset + i + 2 // 1-indexed + header row

			if rowData["material_type_id"] == "" || rowData["unit_of_measure_id"] == "" {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Field:   "Material Type",
					Message: "row was not validated before commit",
				})
				return fmt.Errorf("unvalidated row %d", rowNum)
			}

			record := core.NewRecord(col)
			record.Set("name", rowData["name"])
			record.Set("code", rowData["code"])
			record.Set("material_type", rowData["material_type_id"])
			record.Set("unit_of_measure", rowData["unit_of_measure_id"])

			if err := txApp.Save(record); err != nil {
				chunkErrors = append(chunkErrors, ImportRowError{
					Row:     rowNum,
					Field:   "Name",
					Message: err.Error(),
				})
				return fmt.Errorf("insert failed at row %d: %w", rowNum, err)
			}
		}
		return nil
	})

	if err != nil && len(chunkErrors) == 0 {
		chunkErrors = append(chunkErrors, ImportRowError{
			Row:     startOffset + 2,
			Message: err.Error(),
		})
	}

	return chunkErrors
}
