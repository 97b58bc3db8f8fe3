package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ErrNoValidRows is returned when a submitted draft contains nothing
// worth persisting. No store writes happen in that case.
var ErrNoValidRows = errors.New("no valid rows to submit")

// RowResult records the outcome of persisting one draft row.
type RowResult struct {
	Index  int    `json:"index"`
	ItemID string `json:"item_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SubmissionResult aggregates a whole batch submission.
type SubmissionResult struct {
	Created int         `json:"created"`
	Failed  int         `json:"failed"`
	Skipped int         `json:"skipped"`
	Rows    []RowResult `json:"rows"`
}

// SubmitDraft persists the valid rows of a draft as estimate_items
// records, one sequential create per row in the user's row order so the
// backend's arrival order matches the authored order.
//
// Invalid rows are skipped (and counted), never sent. A failed create
// does not abort the batch: rows are independent records, so the driver
// continues and reports per-row outcomes. If no row is valid it returns
// ErrNoValidRows without touching the store.
func SubmitDraft(app *pocketbase.PocketBase, estimateID string, rows []DraftItem) (*SubmissionResult, error) {
	valid, skipped := ValidRows(rows)
	if len(valid) == 0 {
		return nil, ErrNoValidRows
	}

	col, err := app.FindCollectionByNameOrId("estimate_items")
	if err != nil {
		return nil, fmt.Errorf("find estimate_items collection: %w", err)
	}

	result := &SubmissionResult{Skipped: skipped}
	sortOrder := NextItemSortOrder(app, estimateID)

	for idx, row := range rows {
		if !IsRowValid(row) {
			continue
		}

		record := core.NewRecord(col)
		fillItemRecord(record, estimateID, sortOrder, row)

		if err := app.Save(record); err != nil {
			log.Printf("submit: SubmitDraft: could not save row %d for estimate %s: %v", idx, estimateID, err)
			result.Failed++
			result.Rows = append(result.Rows, RowResult{Index: idx, Error: err.Error()})
			continue
		}

		result.Created++
		result.Rows = append(result.Rows, RowResult{Index: idx, ItemID: record.Id})
		sortOrder++
	}

	return result, nil
}

// fillItemRecord copies a draft row onto an estimate_items record.
// Only the branch matching the item type is written; the inactive
// branch's fields stay empty even if the user filled them earlier.
func fillItemRecord(record *core.Record, estimateID string, sortOrder int, row DraftItem) {
	record.Set("material_estimate", estimateID)
	record.Set("sort_order", sortOrder)
	record.Set("item_type", string(row.ItemType))
	record.Set("subsection", row.SubsectionID)

	switch row.ItemType {
	case ItemTypeMaterial:
		record.Set("material_type", row.MaterialType)
		record.Set("material", row.MaterialID)
	case ItemTypeService:
		record.Set("service_group", row.ServiceGroup)
		record.Set("service", row.ServiceID)
	}

	qty := row.Quantity
	if qty == 0 {
		qty = 1
	}
	coef := row.Coefficient
	if coef == 0 {
		coef = 1
	}

	record.Set("unit_of_measure", row.UnitOfMeasure)
	record.Set("quantity_planned", qty)
	record.Set("coefficient", coef)
	record.Set("currency", row.Currency)
	record.Set("price", row.Price)
	record.Set("comment", row.Comment)
}

// NextItemSortOrder returns the next sort_order value for an estimate's
// line items.
func NextItemSortOrder(app *pocketbase.PocketBase, estimateID string) int {
	existing, err := app.FindRecordsByFilter(
		"estimate_items",
		"material_estimate = {:estimateId}",
		"-sort_order",
		1,
		0,
		map[string]any{"estimateId": estimateID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sort_order") + 1
}
