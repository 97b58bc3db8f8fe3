package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var stageFields = []string{"block", "name", "sort_order", "starts_on", "ends_on"}

type stageForm struct {
	Name      string  `json:"name"`
	SortOrder float64 `json:"sort_order"`
	StartsOn  string  `json:"starts_on"`
	EndsOn    string  `json:"ends_on"`
}

// HandleStageList handles GET /api/blocks/{blockId}/stages, ordered by
// sort_order.
func HandleStageList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("blockId")

		if _, err := app.FindRecordById("blocks", blockID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}

		stages, err := app.FindRecordsByFilter(
			"stages",
			"block = {:blockId}",
			"sort_order",
			0,
			0,
			map[string]any{"blockId": blockID},
		)
		if err != nil {
			log.Printf("stages: HandleStageList: could not query stages for %s: %v", blockID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items": recordList(stages, stageFields...),
		})
	}
}

// HandleStageCreate handles POST /api/blocks/{blockId}/stages.
func HandleStageCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("blockId")

		if _, err := app.FindRecordById("blocks", blockID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}

		var form stageForm
		if err := e.BindBody(&form); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(form.Name) == "" {
			return ErrorNotice(e, http.StatusBadRequest, "Name is required")
		}

		col, err := app.FindCollectionByNameOrId("stages")
		if err != nil {
			log.Printf("stages: HandleStageCreate: could not find stages collection: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("block", blockID)
		record.Set("name", strings.TrimSpace(form.Name))
		record.Set("sort_order", form.SortOrder)
		record.Set("starts_on", form.StartsOn)
		record.Set("ends_on", form.EndsOn)

		if err := app.Save(record); err != nil {
			log.Printf("stages: HandleStageCreate: could not save stage: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Stage added", recordFields(record, stageFields...))
	}
}

// HandleStageUpdate handles PATCH /api/stages/{id}.
func HandleStageUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		stage, err := app.FindRecordById("stages", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Stage not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		for _, field := range []string{"name", "starts_on", "ends_on"} {
			if v, ok := body[field].(string); ok {
				stage.Set(field, strings.TrimSpace(v))
			}
		}
		if v, ok := body["sort_order"].(float64); ok {
			stage.Set("sort_order", v)
		}

		if err := app.Save(stage); err != nil {
			log.Printf("stages: HandleStageUpdate: could not save stage %s: %v", stage.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "info", "Stage updated", recordFields(stage, stageFields...))
	}
}

// HandleStageDelete handles DELETE /api/stages/{id}.
func HandleStageDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		stage, err := app.FindRecordById("stages", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Stage not found")
		}

		if err := app.Delete(stage); err != nil {
			log.Printf("stages: HandleStageDelete: could not delete stage %s: %v", stage.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Stage removed", nil)
	}
}
