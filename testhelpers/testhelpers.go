// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestBlock creates a project block record and returns it.
func CreateTestBlock(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("blocks")
	if err != nil {
		t.Fatalf("failed to find blocks collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("code", "B1")
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test block: %v", err)
	}

	return record
}

// CreateTestStage creates a stage record linked to a block.
func CreateTestStage(t *testing.T, app *pocketbase.PocketBase, blockID, name string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("stages")
	if err != nil {
		t.Fatalf("failed to find stages collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("block", blockID)
	record.Set("name", name)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test stage: %v", err)
	}

	return record
}

// CreateTestEstimate creates a material estimate linked to a block.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, blockID, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_estimates")
	if err != nil {
		t.Fatalf("failed to find material_estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("block", blockID)
	record.Set("title", title)
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// CreateTestEstimateItem creates an estimate line item record.
func CreateTestEstimateItem(t *testing.T, app *pocketbase.PocketBase, estimateID string, sortOrder int, itemType string, qty, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimate_items")
	if err != nil {
		t.Fatalf("failed to find estimate_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("material_estimate", estimateID)
	record.Set("sort_order", sortOrder)
	record.Set("item_type", itemType)
	record.Set("quantity_planned", qty)
	record.Set("coefficient", 1)
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate item: %v", err)
	}

	return record
}

// CreateTestUnit creates a unit record.
func CreateTestUnit(t *testing.T, app *pocketbase.PocketBase, name, shortName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("units")
	if err != nil {
		t.Fatalf("failed to find units collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("short_name", shortName)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test unit: %v", err)
	}

	return record
}

// CreateTestCurrency creates a currency record.
func CreateTestCurrency(t *testing.T, app *pocketbase.PocketBase, code, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("currencies")
	if err != nil {
		t.Fatalf("failed to find currencies collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test currency: %v", err)
	}

	return record
}

// CreateTestMaterialType creates a material type record.
func CreateTestMaterialType(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_types")
	if err != nil {
		t.Fatalf("failed to find material_types collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material type: %v", err)
	}

	return record
}

// CreateTestMaterial creates a material record with a declared unit.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, typeID, name, unitID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("material_type", typeID)
	record.Set("name", name)
	record.Set("unit_of_measure", unitID)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestServiceGroup creates a service group record.
func CreateTestServiceGroup(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("service_groups")
	if err != nil {
		t.Fatalf("failed to find service_groups collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test service group: %v", err)
	}

	return record
}

// CreateTestService creates a service record under a group.
func CreateTestService(t *testing.T, app *pocketbase.PocketBase, groupID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("services_ref")
	if err != nil {
		t.Fatalf("failed to find services_ref collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("service_group", groupID)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test service: %v", err)
	}

	return record
}

// CreateTestDocument creates a document record.
func CreateTestDocument(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("documents")
	if err != nil {
		t.Fatalf("failed to find documents collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("number", "D-001")
	record.Set("doc_type", "contract")
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test document: %v", err)
	}

	return record
}

// CreateTestSupplier creates a supplier record.
func CreateTestSupplier(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		t.Fatalf("failed to find suppliers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("contact_name", "Test Contact")
	record.Set("phone", "+7 900 000-00-00")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test supplier: %v", err)
	}

	return record
}
