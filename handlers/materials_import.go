package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/services"
)

// HandleMaterialImportValidate handles POST /api/materials/import with a
// multipart body (field "file"). It parses and validates the upload
// without writing anything, returning the validation report plus the
// parsed rows for a follow-up commit.
func HandleMaterialImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(20 << 20); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid multipart form")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Missing file")
		}
		defer file.Close()

		result, err := services.ValidateMaterialFile(app, file, header.Filename)
		if err != nil {
			log.Printf("materials_import: HandleMaterialImportValidate: %v", err)
			return ErrorNotice(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, map[string]any{
			"total_rows":  result.TotalRows,
			"valid_rows":  result.ValidRows,
			"error_rows":  result.ErrorRows,
			"errors":      result.Errors,
			"parsed_rows": result.ParsedRows,
		})
	}
}

// materialCommitForm carries the rows previously returned by validate.
type materialCommitForm struct {
	ParsedRows []map[string]string `json:"parsed_rows"`
}

// HandleMaterialImportCommit handles POST /api/materials/import/commit,
// inserting the validated rows in chunks.
func HandleMaterialImportCommit(app *pocketbase.PocketBase, cache *services.RefCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var form materialCommitForm
		if err := e.BindBody(&form); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		if len(form.ParsedRows) == 0 {
			return ErrorNotice(e, http.StatusBadRequest, "File data missing. Please re-upload and try again.")
		}

		result, err := services.CommitMaterialImport(app, form.ParsedRows)
		if err != nil {
			log.Printf("materials_import: HandleMaterialImportCommit: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Imported materials must show up in dependent selects right away.
		if _, err := cache.Refresh(app, "materials"); err != nil {
			log.Printf("materials_import: HandleMaterialImportCommit: cache refresh failed: %v", err)
		}

		noticeType := "success"
		message := "Materials imported"
		if result.Failed > 0 {
			noticeType = "warning"
			message = "Materials imported with errors"
		}

		return OKNotice(e, noticeType, message, result)
	}
}
