package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"
)

// HandleDocumentFileList handles GET /api/documents/{id}/files.
func HandleDocumentFileList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		documentID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("documents", documentID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Document not found")
		}

		files, err := app.FindRecordsByFilter(
			"document_files",
			"document = {:documentId}",
			"-created",
			0,
			0,
			map[string]any{"documentId": documentID},
		)
		if err != nil {
			log.Printf("document_files: HandleDocumentFileList: could not query files for %s: %v", documentID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items": recordList(files, "name", "file", "created"),
		})
	}
}

// HandleDocumentFileUpload handles POST /api/documents/{id}/files with a
// multipart body (field "file", optional field "name").
func HandleDocumentFileUpload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		documentID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("documents", documentID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Document not found")
		}

		if err := e.Request.ParseMultipartForm(50 << 20); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid multipart form")
		}

		_, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Missing file")
		}

		upload, err := filesystem.NewFileFromMultipart(header)
		if err != nil {
			log.Printf("document_files: HandleDocumentFileUpload: could not read upload: %v", err)
			return ErrorNotice(e, http.StatusBadRequest, "Could not read uploaded file")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			name = header.Filename
		}

		col, err := app.FindCollectionByNameOrId("document_files")
		if err != nil {
			log.Printf("document_files: HandleDocumentFileUpload: could not find document_files collection: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("document", documentID)
		record.Set("name", name)
		record.Set("file", upload)

		if err := app.Save(record); err != nil {
			log.Printf("document_files: HandleDocumentFileUpload: could not save file record: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		recordDocumentHistory(app, documentID, "file_added", fmt.Sprintf("File %q attached", name))

		return OKNotice(e, "success", "File attached", recordFields(record, "name", "file", "created"))
	}
}

// HandleDocumentFileDelete handles DELETE /api/documents/{id}/files/{fileId}.
func HandleDocumentFileDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		documentID := e.Request.PathValue("id")
		fileID := e.Request.PathValue("fileId")

		file, err := app.FindRecordById("document_files", fileID)
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "File not found")
		}

		if file.GetString("document") != documentID {
			return ErrorNotice(e, http.StatusForbidden, "File does not belong to this document")
		}

		name := file.GetString("name")

		if err := app.Delete(file); err != nil {
			log.Printf("document_files: HandleDocumentFileDelete: could not delete file %s: %v", fileID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		recordDocumentHistory(app, documentID, "file_removed", fmt.Sprintf("File %q removed", name))

		return OKNotice(e, "success", "File removed", nil)
	}
}

// HandleDocumentHistory handles GET /api/documents/{id}/history.
func HandleDocumentHistory(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		documentID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("documents", documentID); err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Document not found")
		}

		entries, err := app.FindRecordsByFilter(
			"document_history",
			"document = {:documentId}",
			"-created",
			0,
			0,
			map[string]any{"documentId": documentID},
		)
		if err != nil {
			log.Printf("document_files: HandleDocumentHistory: could not query history for %s: %v", documentID, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items": recordList(entries, "action", "detail", "created"),
		})
	}
}
