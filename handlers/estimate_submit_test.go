package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"siteadmin/services"
	"siteadmin/testhelpers"
)

func TestHandleEstimateItemBatch_MixedRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation")

	handler := HandleEstimateItemBatch(app, services.NewRefCache())

	body := `{"rows": [
		{"item_type": "material", "material_id": "mat1", "quantity_planned": 10, "price": 50},
		{"item_type": "material"},
		{"item_type": "service", "service_id": "svc1", "quantity_planned": 2, "price": 1000}
	]}`
	req := jsonRequest(http.MethodPost, "/api/estimates/"+est.Id+"/items/batch", body)
	req.SetPathValue("id", est.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Notice Notice `json:"notice"`
		Data   struct {
			Result struct {
				Created int `json:"created"`
				Skipped int `json:"skipped"`
				Failed  int `json:"failed"`
			} `json:"result"`
			Items      []map[string]any `json:"items"`
			GrandTotal float64          `json:"grand_total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if resp.Data.Result.Created != 2 || resp.Data.Result.Skipped != 1 {
		t.Errorf("result = %+v, want 2 created / 1 skipped", resp.Data.Result)
	}
	if len(resp.Data.Items) != 2 {
		t.Errorf("expected 2 refetched items, got %d", len(resp.Data.Items))
	}
	if resp.Data.GrandTotal != 2500 {
		t.Errorf("grand_total = %v, want 2500", resp.Data.GrandTotal)
	}

	// A partial submission surfaces as a warning with the skip count
	if resp.Notice.Type != "warning" {
		t.Errorf("notice type = %q, want warning", resp.Notice.Type)
	}
	if !strings.Contains(resp.Notice.Message, "1 skipped") {
		t.Errorf("notice message = %q", resp.Notice.Message)
	}
}

func TestHandleEstimateItemBatch_AllValid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation")

	handler := HandleEstimateItemBatch(app, services.NewRefCache())

	body := `{"rows": [
		{"item_type": "material", "material_id": "mat1", "price": 50}
	]}`
	req := jsonRequest(http.MethodPost, "/api/estimates/"+est.Id+"/items/batch", body)
	req.SetPathValue("id", est.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Notice Notice `json:"notice"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Notice.Type != "success" {
		t.Errorf("notice type = %q, want success", resp.Notice.Type)
	}
}

func TestHandleEstimateItemBatch_NoValidRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation")

	handler := HandleEstimateItemBatch(app, services.NewRefCache())

	body := `{"rows": [{"item_type": "material"}, {}]}`
	req := jsonRequest(http.MethodPost, "/api/estimates/"+est.Id+"/items/batch", body)
	req.SetPathValue("id", est.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	count, _ := app.CountRecords("estimate_items")
	if count != 0 {
		t.Errorf("expected no items created, got %d", count)
	}
}

func TestHandleEstimateItemBatch_EstimateNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleEstimateItemBatch(app, services.NewRefCache())

	req := jsonRequest(http.MethodPost, "/api/estimates/nonexistent/items/batch",
		`{"rows": []}`)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleEstimateItemBatch_PreservesRowOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation")

	handler := HandleEstimateItemBatch(app, services.NewRefCache())

	body := `{"rows": [
		{"item_type": "material", "material_id": "first", "price": 1},
		{"item_type": "material", "material_id": "second", "price": 2},
		{"item_type": "material", "material_id": "third", "price": 3}
	]}`
	req := jsonRequest(http.MethodPost, "/api/estimates/"+est.Id+"/items/batch", body)
	req.SetPathValue("id", est.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	items, _ := app.FindRecordsByFilter("estimate_items",
		"material_estimate = {:id}", "sort_order", 0, 0, map[string]any{"id": est.Id})
	want := []string{"first", "second", "third"}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, materialID := range want {
		if items[i].GetString("material") != materialID {
			t.Errorf("item %d = %q, want %q", i, items[i].GetString("material"), materialID)
		}
	}
}
