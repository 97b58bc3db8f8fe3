package services

import (
	"testing"

	"siteadmin/testhelpers"
)

func TestBuildEstimateExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	stage := testhelpers.CreateTestStage(t, app, block.Id, "Foundation", 1)
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation Works")
	est.Set("number", "EST-B1-26-001")
	if err := app.Save(est); err != nil {
		t.Fatalf("failed to save estimate: %v", err)
	}

	unit := testhelpers.CreateTestUnit(t, app, "Kilogram", "kg")
	mt := testhelpers.CreateTestMaterialType(t, app, "Concrete")
	mat := testhelpers.CreateTestMaterial(t, app, mt.Id, "Cement M500", unit.Id)

	item := testhelpers.CreateTestEstimateItem(t, app, est.Id, 1, "material", 10, 50)
	item.Set("material", mat.Id)
	item.Set("material_type", mt.Id)
	item.Set("unit_of_measure", unit.Id)
	item.Set("subsection", stage.Id)
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	data, err := BuildEstimateExport(app, NewRefCache(), est.Id)
	if err != nil {
		t.Fatalf("BuildEstimateExport() error = %v", err)
	}

	if data.Title != "Foundation Works" || data.Number != "EST-B1-26-001" {
		t.Errorf("header = %q / %q", data.Title, data.Number)
	}
	if data.BlockName != "Block A" {
		t.Errorf("block name = %q, want Block A", data.BlockName)
	}
	if len(data.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(data.Rows))
	}

	row := data.Rows[0]
	if row.Name != "Cement M500" {
		t.Errorf("row name = %q, want resolved material name", row.Name)
	}
	if row.UoM != "Kilogram" {
		t.Errorf("row unit = %q, want resolved unit name", row.UoM)
	}
	if row.Subsection != "Foundation" {
		t.Errorf("row subsection = %q, want stage name", row.Subsection)
	}
	if row.Total != 500 {
		t.Errorf("row total = %v, want 500", row.Total)
	}
	if data.GrandTotal != 500 {
		t.Errorf("grand total = %v, want 500", data.GrandTotal)
	}
}

func TestBuildEstimateExport_MissingEstimate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if _, err := BuildEstimateExport(app, NewRefCache(), "missing"); err == nil {
		t.Fatal("expected error for unknown estimate")
	}
}
