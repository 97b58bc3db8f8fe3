package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/services"
)

var estimateFields = []string{"block", "title", "number", "status", "created", "updated"}

type estimateForm struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// HandleEstimateList handles GET /api/blocks/{blockId}/estimates.
func HandleEstimateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("blockId")
		p := parsePagination(e)

		if _, err := app.FindRecordById("blocks", blockID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}

		records, err := app.FindRecordsByFilter(
			"material_estimates",
			"block = {:blockId}",
			"-created",
			p.PerPage,
			p.Offset(),
			map[string]any{"blockId": blockID},
		)
		if err != nil {
			log.Printf("estimates: HandleEstimateList: could not query estimates for %s: %v", blockID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		total, err := app.CountRecords("material_estimates", dbx.HashExp{"block": blockID})
		if err != nil {
			total = int64(len(records))
		}

		return e.JSON(http.StatusOK, listEnvelope{
			Items:   recordList(records, estimateFields...),
			Page:    p.Page,
			PerPage: p.PerPage,
			Total:   total,
		})
	}
}

// HandleEstimateGet handles GET /api/estimates/{id}. The response
// includes the grand total over the persisted line items.
func HandleEstimateGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("material_estimates", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Estimate not found")
		}

		items, err := app.FindRecordsByFilter(
			"estimate_items",
			"material_estimate = {:estimateId}",
			"sort_order",
			0,
			0,
			map[string]any{"estimateId": estimate.Id},
		)
		if err != nil {
			items = nil
		}

		var grandTotal float64
		for _, item := range items {
			coef := item.GetFloat("coefficient")
			if coef == 0 {
				coef = 1
			}
			grandTotal += item.GetFloat("quantity_planned") * item.GetFloat("price") * coef
		}

		data := recordFields(estimate, estimateFields...)
		data["item_count"] = len(items)
		data["grand_total"] = grandTotal

		return e.JSON(http.StatusOK, data)
	}
}

// HandleEstimateCreate handles POST /api/blocks/{blockId}/estimates.
// The estimate number is generated per block per year.
func HandleEstimateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("blockId")

		if _, err := app.FindRecordById("blocks", blockID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}

		var form estimateForm
		if err := e.BindBody(&form); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(form.Title) == "" {
			return ErrorNotice(e, http.StatusBadRequest, "Title is required")
		}

		number, err := services.GenerateEstimateNumber(app, blockID, time.Now())
		if err != nil {
			log.Printf("estimates: HandleEstimateCreate: could not generate number: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		col, err := app.FindCollectionByNameOrId("material_estimates")
		if err != nil {
			log.Printf("estimates: HandleEstimateCreate: could not find material_estimates collection: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("block", blockID)
		record.Set("title", strings.TrimSpace(form.Title))
		record.Set("number", number)
		record.Set("status", "draft")

		if err := app.Save(record); err != nil {
			log.Printf("estimates: HandleEstimateCreate: could not save estimate: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Estimate created", recordFields(record, estimateFields...))
	}
}

// HandleEstimateUpdate handles PATCH /api/estimates/{id}.
func HandleEstimateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("material_estimates", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Estimate not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		if v, ok := body["title"].(string); ok && strings.TrimSpace(v) != "" {
			estimate.Set("title", strings.TrimSpace(v))
		}
		if v, ok := body["status"].(string); ok && v != "" {
			estimate.Set("status", v)
		}

		if err := app.Save(estimate); err != nil {
			log.Printf("estimates: HandleEstimateUpdate: could not save estimate %s: %v", estimate.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "info", "Estimate updated", recordFields(estimate, estimateFields...))
	}
}

// HandleEstimateDelete handles DELETE /api/estimates/{id}. Line items
// cascade with the record.
func HandleEstimateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("material_estimates", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Estimate not found")
		}

		if err := app.Delete(estimate); err != nil {
			log.Printf("estimates: HandleEstimateDelete: could not delete estimate %s: %v", estimate.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Estimate removed", nil)
	}
}
