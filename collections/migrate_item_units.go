package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateItemUnits backfills unit_of_measure on material line items that
// were saved without one, copying the unit declared on their material
// reference record. Safe to call on every startup -- returns early if
// nothing to migrate.
func MigrateItemUnits(app *pocketbase.PocketBase) error {
	orphanItems, err := app.FindRecordsByFilter(
		"estimate_items",
		"item_type = 'material' && unit_of_measure = '' && material != ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query items without a unit: %w", err)
	}

	if len(orphanItems) == 0 {
		return nil
	}

	log.Printf("migrate: found %d item(s) without a unit -- backfilling from materials...\n", len(orphanItems))

	migrated := 0
	for _, item := range orphanItems {
		material, err := app.FindRecordById("materials", item.GetString("material"))
		if err != nil {
			log.Printf("migrate: material %s not found for item %s, skipping\n", item.GetString("material"), item.Id)
			continue
		}

		unit := material.GetString("unit_of_measure")
		if unit == "" {
			continue
		}

		item.Set("unit_of_measure", unit)
		if err := app.Save(item); err != nil {
			log.Printf("migrate: failed to update item %s: %v\n", item.Id, err)
			continue
		}
		migrated++
	}

	log.Printf("migrate: backfilled units on %d item(s)\n", migrated)
	return nil
}
