package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var documentFields = []string{
	"title", "number", "doc_type", "status", "issued_at", "description", "created", "updated",
}

// documentForm is the JSON body accepted by create/update.
type documentForm struct {
	Title       string `json:"title"`
	Number      string `json:"number"`
	DocType     string `json:"doc_type"`
	Status      string `json:"status"`
	IssuedAt    string `json:"issued_at"`
	Description string `json:"description"`
}

// HandleDocumentList handles GET /api/documents with pagination and
// optional status / q (title substring) filters.
func HandleDocumentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p := parsePagination(e)
		query := e.Request.URL.Query()

		filter := "id != ''"
		params := map[string]any{}

		exprs := []dbx.Expression{}
		if status := strings.TrimSpace(query.Get("status")); status != "" {
			filter += " && status = {:status}"
			params["status"] = status
			exprs = append(exprs, dbx.HashExp{"status": status})
		}
		if q := strings.TrimSpace(query.Get("q")); q != "" {
			filter += " && title ~ {:q}"
			params["q"] = q
			exprs = append(exprs, dbx.Like("title", q))
		}

		records, err := app.FindRecordsByFilter(
			"documents", filter, "-created", p.PerPage, p.Offset(), params,
		)
		if err != nil {
			log.Printf("documents: HandleDocumentList: could not query documents: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		total, err := app.CountRecords("documents", exprs...)
		if err != nil {
			log.Printf("documents: HandleDocumentList: could not count documents: %v", err)
			total = int64(len(records))
		}

		return e.JSON(http.StatusOK, listEnvelope{
			Items:   recordList(records, documentFields...),
			Page:    p.Page,
			PerPage: p.PerPage,
			Total:   total,
		})
	}
}

// HandleDocumentGet handles GET /api/documents/{id}.
func HandleDocumentGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := app.FindRecordById("documents", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Document not found")
		}
		return e.JSON(http.StatusOK, recordFields(doc, documentFields...))
	}
}

// HandleDocumentCreate handles POST /api/documents.
func HandleDocumentCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var form documentForm
		if err := e.BindBody(&form); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(form.Title) == "" {
			return ErrorNotice(e, http.StatusBadRequest, "Title is required")
		}

		col, err := app.FindCollectionByNameOrId("documents")
		if err != nil {
			log.Printf("documents: HandleDocumentCreate: could not find documents collection: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		applyDocumentForm(record, form)
		if record.GetString("status") == "" {
			record.Set("status", "draft")
		}

		if err := app.Save(record); err != nil {
			log.Printf("documents: HandleDocumentCreate: could not save document: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		recordDocumentHistory(app, record.Id, "created", fmt.Sprintf("Document %q created", record.GetString("title")))

		return OKNotice(e, "success", "Document created", recordFields(record, documentFields...))
	}
}

// HandleDocumentUpdate handles PATCH /api/documents/{id}. Only fields
// present in the body are changed.
func HandleDocumentUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := app.FindRecordById("documents", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Document not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		var changed []string
		for _, field := range []string{"title", "number", "doc_type", "status", "issued_at", "description"} {
			if v, ok := body[field]; ok {
				if s, ok := v.(string); ok {
					doc.Set(field, strings.TrimSpace(s))
					changed = append(changed, field)
				}
			}
		}

		if len(changed) == 0 {
			return ErrorNotice(e, http.StatusBadRequest, "Nothing to update")
		}

		if err := app.Save(doc); err != nil {
			log.Printf("documents: HandleDocumentUpdate: could not save document %s: %v", doc.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		recordDocumentHistory(app, doc.Id, "updated", "Changed: "+strings.Join(changed, ", "))

		return OKNotice(e, "info", "Document updated", recordFields(doc, documentFields...))
	}
}

// HandleDocumentDelete handles DELETE /api/documents/{id}. Files and
// history cascade with the record.
func HandleDocumentDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := app.FindRecordById("documents", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Document not found")
		}

		if err := app.Delete(doc); err != nil {
			log.Printf("documents: HandleDocumentDelete: could not delete document %s: %v", doc.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Document removed", nil)
	}
}

func applyDocumentForm(record *core.Record, form documentForm) {
	record.Set("title", strings.TrimSpace(form.Title))
	record.Set("number", strings.TrimSpace(form.Number))
	record.Set("doc_type", form.DocType)
	record.Set("status", form.Status)
	record.Set("issued_at", form.IssuedAt)
	record.Set("description", form.Description)
}

// recordDocumentHistory appends an audit entry for a document. History
// is best-effort: a failed write is logged, never surfaced.
func recordDocumentHistory(app *pocketbase.PocketBase, documentID, action, detail string) {
	col, err := app.FindCollectionByNameOrId("document_history")
	if err != nil {
		log.Printf("documents: recordDocumentHistory: could not find document_history collection: %v", err)
		return
	}

	entry := core.NewRecord(col)
	entry.Set("document", documentID)
	entry.Set("action", action)
	entry.Set("detail", detail)

	if err := app.Save(entry); err != nil {
		log.Printf("documents: recordDocumentHistory: could not save history for %s: %v", documentID, err)
	}
}
