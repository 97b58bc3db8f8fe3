package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/services"
)

var itemFields = []string{
	"material_estimate", "sort_order", "item_type", "subsection",
	"service_group", "service", "material_type", "material",
	"unit_of_measure", "quantity_planned", "coefficient", "currency",
	"price", "comment", "created",
}

// listEstimateItems loads an estimate's items in sort order and the
// grand total across them.
func listEstimateItems(app *pocketbase.PocketBase, estimateID string) ([]map[string]any, float64, error) {
	records, err := app.FindRecordsByFilter(
		"estimate_items",
		"material_estimate = {:estimateId}",
		"sort_order",
		0,
		0,
		map[string]any{"estimateId": estimateID},
	)
	if err != nil {
		return nil, 0, err
	}

	items := recordList(records, itemFields...)

	var grandTotal float64
	for _, rec := range records {
		coef := rec.GetFloat("coefficient")
		if coef == 0 {
			coef = 1
		}
		grandTotal += rec.GetFloat("quantity_planned") * rec.GetFloat("price") * coef
	}

	return items, grandTotal, nil
}

// HandleEstimateItemList handles GET /api/estimates/{id}/items.
func HandleEstimateItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("material_estimates", estimateID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Estimate not found")
		}

		items, grandTotal, err := listEstimateItems(app, estimateID)
		if err != nil {
			log.Printf("estimate_items: HandleEstimateItemList: could not query items for %s: %v", estimateID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":       items,
			"grand_total": grandTotal,
		})
	}
}

// HandleEstimateItemCreate handles POST /api/estimates/{id}/items.
// A single-row convenience wrapper over the batch submission driver.
func HandleEstimateItemCreate(app *pocketbase.PocketBase, cache *services.RefCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("material_estimates", estimateID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Estimate not found")
		}

		var row services.DraftItem
		if err := e.BindBody(&row); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		normalizeDraftRows(app, cache, []services.DraftItem{row})

		result, err := services.SubmitDraft(app, estimateID, []services.DraftItem{row})
		if err == services.ErrNoValidRows {
			return ErrorNotice(e, http.StatusBadRequest, "Row is incomplete: pick an item and a positive price")
		}
		if err != nil {
			log.Printf("estimate_items: HandleEstimateItemCreate: submit failed for %s: %v", estimateID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		if result.Failed > 0 {
			return ErrorNotice(e, http.StatusInternalServerError, "Could not save the line item")
		}

		items, grandTotal, err := listEstimateItems(app, estimateID)
		if err != nil {
			log.Printf("estimate_items: HandleEstimateItemCreate: refetch failed for %s: %v", estimateID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Line item added", map[string]any{
			"items":       items,
			"grand_total": grandTotal,
		})
	}
}

// HandleEstimateItemUpdate handles PATCH /api/estimates/{id}/items/{itemId}.
// Only fields present in the body are changed.
func HandleEstimateItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		item, err := app.FindRecordById("estimate_items", itemID)
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Line item not found")
		}

		if item.GetString("material_estimate") != estimateID {
			return ErrorNotice(e, http.StatusForbidden, "Line item does not belong to this estimate")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		for _, field := range []string{"subsection", "unit_of_measure", "currency", "comment"} {
			if v, ok := body[field].(string); ok {
				item.Set(field, v)
			}
		}
		for _, field := range []string{"quantity_planned", "coefficient", "price"} {
			if v, ok := body[field].(float64); ok {
				item.Set(field, v)
			}
		}

		if err := app.Save(item); err != nil {
			log.Printf("estimate_items: HandleEstimateItemUpdate: could not save item %s: %v", itemID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "info", "Line item updated", recordFields(item, itemFields...))
	}
}

// HandleEstimateItemDelete handles DELETE /api/estimates/{id}/items/{itemId}.
func HandleEstimateItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		item, err := app.FindRecordById("estimate_items", itemID)
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Line item not found")
		}

		if item.GetString("material_estimate") != estimateID {
			return ErrorNotice(e, http.StatusForbidden, "Line item does not belong to this estimate")
		}

		if err := app.Delete(item); err != nil {
			log.Printf("estimate_items: HandleEstimateItemDelete: could not delete item %s: %v", itemID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Line item removed", nil)
	}
}
