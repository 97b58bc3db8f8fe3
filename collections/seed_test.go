package collections_test

import (
	"testing"

	"siteadmin/collections"
	"siteadmin/testhelpers"
)

func TestSeed_CreatesReferenceData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	units, err := app.FindAllRecords("units")
	if err != nil {
		t.Fatalf("query units error: %v", err)
	}
	if len(units) != 10 {
		t.Errorf("expected 10 units, got %d", len(units))
	}

	currencies, _ := app.FindAllRecords("currencies")
	if len(currencies) != 3 {
		t.Errorf("expected 3 currencies, got %d", len(currencies))
	}

	groups, _ := app.FindAllRecords("service_groups")
	if len(groups) != 4 {
		t.Errorf("expected 4 service groups, got %d", len(groups))
	}

	services, _ := app.FindAllRecords("services_ref")
	if len(services) != 12 {
		t.Errorf("expected 12 services, got %d", len(services))
	}

	// Every service belongs to a known group
	groupIDs := map[string]bool{}
	for _, g := range groups {
		groupIDs[g.Id] = true
	}
	for _, s := range services {
		if !groupIDs[s.GetString("service_group")] {
			t.Errorf("service %q has unknown group %q",
				s.GetString("name"), s.GetString("service_group"))
		}
	}

	materialTypes, _ := app.FindAllRecords("material_types")
	if len(materialTypes) != 4 {
		t.Errorf("expected 4 material types, got %d", len(materialTypes))
	}

	materials, _ := app.FindAllRecords("materials")
	if len(materials) != 8 {
		t.Errorf("expected 8 materials, got %d", len(materials))
	}

	// Every material carries a unit
	for _, m := range materials {
		if m.GetString("unit_of_measure") == "" {
			t.Errorf("material %q has no unit", m.GetString("name"))
		}
	}

	suppliers, _ := app.FindAllRecords("suppliers")
	if len(suppliers) != 3 {
		t.Errorf("expected 3 suppliers, got %d", len(suppliers))
	}
}

func TestSeed_SkipsWhenDataPresent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	units, _ := app.FindAllRecords("units")
	if len(units) != 10 {
		t.Errorf("expected 10 units after reseed, got %d", len(units))
	}
	materials, _ := app.FindAllRecords("materials")
	if len(materials) != 8 {
		t.Errorf("expected 8 materials after reseed, got %d", len(materials))
	}
}

func TestSeed_SkipsWhenUnitsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUnit(t, app, "Custom", "cu")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	units, _ := app.FindAllRecords("units")
	if len(units) != 1 {
		t.Errorf("expected seed to skip, got %d units", len(units))
	}
}
