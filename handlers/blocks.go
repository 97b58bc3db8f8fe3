package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var blockFields = []string{"name", "code", "description", "sort_order", "created", "updated"}

type blockForm struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	SortOrder   float64 `json:"sort_order"`
}

// HandleBlockList handles GET /api/blocks.
func HandleBlockList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p := parsePagination(e)

		records, err := app.FindRecordsByFilter(
			"blocks", "id != ''", "sort_order,name", p.PerPage, p.Offset(), nil,
		)
		if err != nil {
			log.Printf("blocks: HandleBlockList: could not query blocks: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		total, err := app.CountRecords("blocks")
		if err != nil {
			total = int64(len(records))
		}

		return e.JSON(http.StatusOK, listEnvelope{
			Items:   recordList(records, blockFields...),
			Page:    p.Page,
			PerPage: p.PerPage,
			Total:   total,
		})
	}
}

// HandleBlockGet handles GET /api/blocks/{id}.
func HandleBlockGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		block, err := app.FindRecordById("blocks", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}
		return e.JSON(http.StatusOK, recordFields(block, blockFields...))
	}
}

// HandleBlockCreate handles POST /api/blocks.
func HandleBlockCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var form blockForm
		if err := e.BindBody(&form); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(form.Name) == "" {
			return ErrorNotice(e, http.StatusBadRequest, "Name is required")
		}

		col, err := app.FindCollectionByNameOrId("blocks")
		if err != nil {
			log.Printf("blocks: HandleBlockCreate: could not find blocks collection: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", strings.TrimSpace(form.Name))
		record.Set("code", strings.TrimSpace(form.Code))
		record.Set("description", form.Description)
		record.Set("sort_order", form.SortOrder)

		if err := app.Save(record); err != nil {
			log.Printf("blocks: HandleBlockCreate: could not save block: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Block created", recordFields(record, blockFields...))
	}
}

// HandleBlockUpdate handles PATCH /api/blocks/{id}.
func HandleBlockUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		block, err := app.FindRecordById("blocks", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		for _, field := range []string{"name", "code", "description"} {
			if v, ok := body[field].(string); ok {
				block.Set(field, strings.TrimSpace(v))
			}
		}
		if v, ok := body["sort_order"].(float64); ok {
			block.Set("sort_order", v)
		}

		if err := app.Save(block); err != nil {
			log.Printf("blocks: HandleBlockUpdate: could not save block %s: %v", block.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "info", "Block updated", recordFields(block, blockFields...))
	}
}

// HandleBlockDelete handles DELETE /api/blocks/{id}. Stages and
// estimates cascade with the record.
func HandleBlockDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		block, err := app.FindRecordById("blocks", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}

		if err := app.Delete(block); err != nil {
			log.Printf("blocks: HandleBlockDelete: could not delete block %s: %v", block.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Block removed", nil)
	}
}
