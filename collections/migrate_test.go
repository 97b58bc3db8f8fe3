package collections_test

import (
	"testing"

	"siteadmin/collections"
	"siteadmin/testhelpers"
)

func TestMigrateItemUnits_BackfillsFromMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation")
	unit := testhelpers.CreateTestUnit(t, app, "Kilogram", "kg")
	mt := testhelpers.CreateTestMaterialType(t, app, "Concrete")
	mat := testhelpers.CreateTestMaterial(t, app, mt.Id, "Cement M500", unit.Id)

	item := testhelpers.CreateTestEstimateItem(t, app, est.Id, 1, "material", 10, 50)
	item.Set("material", mat.Id)
	item.Set("unit_of_measure", "")
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	if err := collections.MigrateItemUnits(app); err != nil {
		t.Fatalf("MigrateItemUnits() error: %v", err)
	}

	migrated, _ := app.FindRecordById("estimate_items", item.Id)
	if got := migrated.GetString("unit_of_measure"); got != unit.Id {
		t.Errorf("unit_of_measure = %q, want %q", got, unit.Id)
	}
}

func TestMigrateItemUnits_LeavesFilledItemsAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation")
	unit := testhelpers.CreateTestUnit(t, app, "Kilogram", "kg")
	other := testhelpers.CreateTestUnit(t, app, "Tonne", "t")
	mt := testhelpers.CreateTestMaterialType(t, app, "Concrete")
	mat := testhelpers.CreateTestMaterial(t, app, mt.Id, "Cement M500", unit.Id)

	item := testhelpers.CreateTestEstimateItem(t, app, est.Id, 1, "material", 10, 50)
	item.Set("material", mat.Id)
	item.Set("unit_of_measure", other.Id)
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	if err := collections.MigrateItemUnits(app); err != nil {
		t.Fatalf("MigrateItemUnits() error: %v", err)
	}

	kept, _ := app.FindRecordById("estimate_items", item.Id)
	if got := kept.GetString("unit_of_measure"); got != other.Id {
		t.Errorf("unit_of_measure = %q, want untouched %q", got, other.Id)
	}
}

func TestMigrateItemUnits_SkipsUnknownMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	block := testhelpers.CreateTestBlock(t, app, "Block A")
	est := testhelpers.CreateTestEstimate(t, app, block.Id, "Foundation")

	item := testhelpers.CreateTestEstimateItem(t, app, est.Id, 1, "material", 10, 50)
	item.Set("material", "missing-material")
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to save item: %v", err)
	}

	if err := collections.MigrateItemUnits(app); err != nil {
		t.Fatalf("MigrateItemUnits() error: %v", err)
	}
}

func TestMigrateItemUnits_NoOpOnEmptyStore(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.MigrateItemUnits(app); err != nil {
		t.Fatalf("MigrateItemUnits() error: %v", err)
	}
}
