package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var supplierFields = []string{"name", "contact_name", "phone", "email", "address"}

type supplierForm struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// HandleSupplierList handles GET /api/suppliers.
func HandleSupplierList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p := parsePagination(e)

		records, err := app.FindRecordsByFilter(
			"suppliers", "id != ''", "name", p.PerPage, p.Offset(), nil,
		)
		if err != nil {
			log.Printf("suppliers: HandleSupplierList: could not query suppliers: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		total, err := app.CountRecords("suppliers")
		if err != nil {
			total = int64(len(records))
		}

		return e.JSON(http.StatusOK, listEnvelope{
			Items:   recordList(records, supplierFields...),
			Page:    p.Page,
			PerPage: p.PerPage,
			Total:   total,
		})
	}
}

// HandleSupplierCreate handles POST /api/suppliers.
func HandleSupplierCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var form supplierForm
		if err := e.BindBody(&form); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(form.Name) == "" {
			return ErrorNotice(e, http.StatusBadRequest, "Name is required")
		}

		col, err := app.FindCollectionByNameOrId("suppliers")
		if err != nil {
			log.Printf("suppliers: HandleSupplierCreate: could not find suppliers collection: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", strings.TrimSpace(form.Name))
		record.Set("contact_name", strings.TrimSpace(form.ContactName))
		record.Set("phone", strings.TrimSpace(form.Phone))
		record.Set("email", strings.TrimSpace(form.Email))
		record.Set("address", strings.TrimSpace(form.Address))

		if err := app.Save(record); err != nil {
			log.Printf("suppliers: HandleSupplierCreate: could not save supplier: %v", err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Supplier created", recordFields(record, supplierFields...))
	}
}

// HandleSupplierUpdate handles PATCH /api/suppliers/{id}.
func HandleSupplierUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		supplier, err := app.FindRecordById("suppliers", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Supplier not found")
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return ErrorNotice(e, http.StatusBadRequest, "Invalid request body")
		}

		for _, field := range supplierFields {
			if v, ok := body[field].(string); ok {
				supplier.Set(field, strings.TrimSpace(v))
			}
		}

		if err := app.Save(supplier); err != nil {
			log.Printf("suppliers: HandleSupplierUpdate: could not save supplier %s: %v", supplier.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "info", "Supplier updated", recordFields(supplier, supplierFields...))
	}
}

// HandleSupplierDelete handles DELETE /api/suppliers/{id}.
func HandleSupplierDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		supplier, err := app.FindRecordById("suppliers", e.Request.PathValue("id"))
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Supplier not found")
		}

		if err := app.Delete(supplier); err != nil {
			log.Printf("suppliers: HandleSupplierDelete: could not delete supplier %s: %v", supplier.Id, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Supplier removed", nil)
	}
}
