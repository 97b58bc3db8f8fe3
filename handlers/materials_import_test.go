package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"siteadmin/services"
	"siteadmin/testhelpers"
)

func TestHandleMaterialImportValidate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUnit(t, app, "Kilogram", "kg")
	testhelpers.CreateTestMaterialType(t, app, "Concrete")

	handler := HandleMaterialImportValidate(app)

	csv := "Name,Material Type,Unit of Measure\nCement M500,Concrete,kg\nMystery,Unknown,kg\n"
	body, contentType := multipartUpload(t, "file", "materials.csv", csv)
	req := httptest.NewRequest(http.MethodPost, "/api/materials/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TotalRows  int                 `json:"total_rows"`
		ValidRows  int                 `json:"valid_rows"`
		ErrorRows  int                 `json:"error_rows"`
		ParsedRows []map[string]string `json:"parsed_rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.TotalRows != 2 || resp.ValidRows != 1 || resp.ErrorRows != 1 {
		t.Errorf("resp = %+v, want 2/1/1", resp)
	}
	if len(resp.ParsedRows) != 2 {
		t.Errorf("expected 2 parsed rows, got %d", len(resp.ParsedRows))
	}
}

func TestHandleMaterialImportValidate_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleMaterialImportValidate(app)

	req := jsonRequest(http.MethodPost, "/api/materials/import", `{}`)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleMaterialImportCommit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	unit := testhelpers.CreateTestUnit(t, app, "Kilogram", "kg")
	mt := testhelpers.CreateTestMaterialType(t, app, "Concrete")

	cache := services.NewRefCache()
	if _, err := cache.Get(app, "materials"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	handler := HandleMaterialImportCommit(app, cache)

	body := `{"parsed_rows": [
		{"name": "Cement M500", "code": "CEM-500",
		 "material_type_id": "` + mt.Id + `", "unit_of_measure_id": "` + unit.Id + `"}
	]}`
	req := jsonRequest(http.MethodPost, "/api/materials/import/commit", body)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	materials, _ := app.FindAllRecords("materials")
	if len(materials) != 1 || materials[0].GetString("name") != "Cement M500" {
		t.Errorf("unexpected materials: %v", materials)
	}

	// Cache is refreshed so lookups see the imported material
	entries, _ := cache.Get(app, "materials")
	if len(entries) != 1 {
		t.Errorf("expected refreshed cache with 1 entry, got %d", len(entries))
	}
}

func TestHandleMaterialImportCommit_EmptyRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleMaterialImportCommit(app, services.NewRefCache())

	req := jsonRequest(http.MethodPost, "/api/materials/import/commit", `{"parsed_rows": []}`)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
