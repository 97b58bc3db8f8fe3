package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/services"
)

// draftSubmitForm is the JSON body of a batch submission: the rows of
// the line-item editor in their authored order.
type draftSubmitForm struct {
	Rows []services.DraftItem `json:"rows"`
}

// HandleEstimateItemBatch handles POST /api/estimates/{id}/items/batch.
// Valid rows are persisted sequentially in row order; invalid rows are
// skipped and counted; per-row failures do not abort the batch. The
// response carries the submission result plus the refetched item list.
func HandleEstimateItemBatch(app *pocketbase.PocketBase, cache *services.RefCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("material_estimates", estimateID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Estimate not found")
		}

		var form draftSubmitForm
		if err := e.BindBody(&form); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		normalizeDraftRows(app, cache, form.Rows)

		result, err := services.SubmitDraft(app, estimateID, form.Rows)
		if err == services.ErrNoValidRows {
			return ErrorNotice(e, http.StatusBadRequest, "No valid rows to submit")
		}
		if err != nil {
			log.Printf("estimate_submit: HandleEstimateItemBatch: submit failed for %s: %v", estimateID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items, grandTotal, err := listEstimateItems(app, estimateID)
		if err != nil {
			log.Printf("estimate_submit: HandleEstimateItemBatch: refetch failed for %s: %v", estimateID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		message := fmt.Sprintf("%d line item(s) added", result.Created)
		noticeType := "success"
		if result.Skipped > 0 {
			message += fmt.Sprintf(", %d skipped", result.Skipped)
			noticeType = "warning"
		}
		if result.Failed > 0 {
			message += fmt.Sprintf(", %d failed", result.Failed)
			noticeType = "warning"
		}

		return OKNotice(e, noticeType, message, map[string]any{
			"result":      result,
			"items":       items,
			"grand_total": grandTotal,
		})
	}
}

// normalizeDraftRows runs the dependent-field resolver over incoming
// rows so a material row always carries the unit declared on its
// material, even when the client sent a stale or missing unit.
func normalizeDraftRows(app *pocketbase.PocketBase, cache *services.RefCache, rows []services.DraftItem) {
	units, err := cache.MaterialUnits(app)
	if err != nil {
		log.Printf("estimate_submit: normalizeDraftRows: could not load material units: %v", err)
		return
	}

	draft := &services.Draft{Rows: rows}
	for i, row := range rows {
		if row.ItemType == services.ItemTypeMaterial && row.MaterialID != "" {
			services.ApplyField(draft, i, "material_id", row.MaterialID, units)
		}
	}
	copy(rows, draft.Rows)
}
