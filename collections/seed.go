package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type unitDef struct {
	name      string
	shortName string
}

type currencyDef struct {
	code   string
	name   string
	symbol string
}

type serviceGroupDef struct {
	name     string
	services []string
}

type materialTypeDef struct {
	name      string
	materials []materialDef
}

type materialDef struct {
	name string
	code string
	unit string // unit short_name
}

type supplierDef struct {
	name        string
	contactName string
	phone       string
	email       string
	address     string
}

// Seed loads the reference lookup tables when they are empty: units,
// currencies, the service taxonomy, the material taxonomy and a few
// suppliers. Already-populated tables are left untouched.
func Seed(app *pocketbase.PocketBase) error {
	seeded, err := seedUnits(app)
	if err != nil {
		return err
	}
	if !seeded {
		log.Println("Reference data already present, skipping seed.")
		return nil
	}

	if err := seedCurrencies(app); err != nil {
		return err
	}
	if err := seedServiceTaxonomy(app); err != nil {
		return err
	}
	if err := seedMaterialTaxonomy(app); err != nil {
		return err
	}
	if err := seedSuppliers(app); err != nil {
		return err
	}

	log.Println("Reference data seeded.")
	return nil
}

// seedUnits returns false without writing when units already exist.
func seedUnits(app *pocketbase.PocketBase) (bool, error) {
	existing, err := app.FindAllRecords("units")
	if err == nil && len(existing) > 0 {
		return false, nil
	}

	col, err := app.FindCollectionByNameOrId("units")
	if err != nil {
		return false, fmt.Errorf("seed: units collection: %w", err)
	}

	defs := []unitDef{
		{"Piece", "pcs"},
		{"Square meter", "m2"},
		{"Cubic meter", "m3"},
		{"Running meter", "rm"},
		{"Kilogram", "kg"},
		{"Tonne", "t"},
		{"Litre", "l"},
		{"Set", "set"},
		{"Hour", "h"},
		{"Lump sum", "ls"},
	}

	for _, d := range defs {
		r := core.NewRecord(col)
		r.Set("name", d.name)
		r.Set("short_name", d.shortName)
		if err := app.Save(r); err != nil {
			return false, fmt.Errorf("seed: save unit %q: %w", d.name, err)
		}
	}
	return true, nil
}

func seedCurrencies(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("currencies")
	if err != nil {
		return fmt.Errorf("seed: currencies collection: %w", err)
	}

	defs := []currencyDef{
		{"RUB", "Russian Rouble", "₽"},
		{"USD", "US Dollar", "$"},
		{"EUR", "Euro", "€"},
	}

	for _, d := range defs {
		r := core.NewRecord(col)
		r.Set("code", d.code)
		r.Set("name", d.name)
		r.Set("symbol", d.symbol)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save currency %q: %w", d.code, err)
		}
	}
	return nil
}

func seedServiceTaxonomy(app *pocketbase.PocketBase) error {
	groupsCol, err := app.FindCollectionByNameOrId("service_groups")
	if err != nil {
		return fmt.Errorf("seed: service_groups collection: %w", err)
	}
	servicesCol, err := app.FindCollectionByNameOrId("services_ref")
	if err != nil {
		return fmt.Errorf("seed: services_ref collection: %w", err)
	}

	defs := []serviceGroupDef{
		{"Earthworks", []string{"Excavation", "Backfilling", "Soil compaction"}},
		{"Concrete works", []string{"Formwork installation", "Rebar binding", "Concrete pouring"}},
		{"Finishing", []string{"Plastering", "Painting", "Tiling"}},
		{"Installation", []string{"Electrical wiring", "Plumbing", "HVAC installation"}},
	}

	for _, g := range defs {
		gr := core.NewRecord(groupsCol)
		gr.Set("name", g.name)
		if err := app.Save(gr); err != nil {
			return fmt.Errorf("seed: save service group %q: %w", g.name, err)
		}

		for _, s := range g.services {
			sr := core.NewRecord(servicesCol)
			sr.Set("service_group", gr.Id)
			sr.Set("name", s)
			if err := app.Save(sr); err != nil {
				return fmt.Errorf("seed: save service %q: %w", s, err)
			}
		}
	}
	return nil
}

func seedMaterialTaxonomy(app *pocketbase.PocketBase) error {
	typesCol, err := app.FindCollectionByNameOrId("material_types")
	if err != nil {
		return fmt.Errorf("seed: material_types collection: %w", err)
	}
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: materials collection: %w", err)
	}

	unitIDs := make(map[string]string)
	units, err := app.FindAllRecords("units")
	if err != nil {
		return fmt.Errorf("seed: load units: %w", err)
	}
	for _, u := range units {
		unitIDs[u.GetString("short_name")] = u.Id
	}

	defs := []materialTypeDef{
		{"Concrete and mortar", []materialDef{
			{"Concrete B25", "C-B25", "m3"},
			{"Cement mortar M150", "M-150", "m3"},
		}},
		{"Metal products", []materialDef{
			{"Rebar A500C 12mm", "RB-12", "t"},
			{"Steel beam 20B1", "SB-20", "t"},
		}},
		{"Masonry", []materialDef{
			{"Ceramic brick M150", "BR-150", "pcs"},
			{"Aerated block D500", "AB-500", "m3"},
		}},
		{"Finishing materials", []materialDef{
			{"Gypsum plaster", "GP-01", "kg"},
			{"Ceramic tile 300x300", "CT-300", "m2"},
		}},
	}

	for _, t := range defs {
		tr := core.NewRecord(typesCol)
		tr.Set("name", t.name)
		if err := app.Save(tr); err != nil {
			return fmt.Errorf("seed: save material type %q: %w", t.name, err)
		}

		for _, m := range t.materials {
			mr := core.NewRecord(materialsCol)
			mr.Set("material_type", tr.Id)
			mr.Set("name", m.name)
			mr.Set("code", m.code)
			if unitID, ok := unitIDs[m.unit]; ok {
				mr.Set("unit_of_measure", unitID)
			}
			if err := app.Save(mr); err != nil {
				return fmt.Errorf("seed: save material %q: %w", m.name, err)
			}
		}
	}
	return nil
}

func seedSuppliers(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		return fmt.Errorf("seed: suppliers collection: %w", err)
	}

	defs := []supplierDef{
		{"StroyTorg LLC", "A. Petrov", "+7 495 123-45-67", "sales@stroytorg.example", "Moscow, Stroiteley st. 12"},
		{"BetonService", "I. Sidorova", "+7 812 765-43-21", "info@betonservice.example", "St. Petersburg, Zavodskaya st. 3"},
		{"MetallProf", "D. Ivanov", "+7 343 222-33-44", "order@metallprof.example", "Yekaterinburg, Promyshlennaya st. 8"},
	}

	for _, d := range defs {
		r := core.NewRecord(col)
		r.Set("name", d.name)
		r.Set("contact_name", d.contactName)
		r.Set("phone", d.phone)
		r.Set("email", d.email)
		r.Set("address", d.address)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save supplier %q: %w", d.name, err)
		}
	}
	return nil
}
