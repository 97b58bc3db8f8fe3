package services

// MaterialUnits maps a material id to the unit of measure declared on
// the material reference record. The resolver treats it as a read-only
// lookup table; missing ids mean the material is unknown.
type MaterialUnits interface {
	UnitForMaterial(materialID string) (string, bool)
}

// MaterialUnitMap is a plain map implementation of MaterialUnits,
// used in tests and when the reference cache has already been flattened.
type MaterialUnitMap map[string]string

func (m MaterialUnitMap) UnitForMaterial(materialID string) (string, bool) {
	unit, ok := m[materialID]
	return unit, ok
}

// ApplyField updates one field of the row at index i and applies the
// dependent-field side effects within the same update:
//
//   - a new service_type clears service_id (the old selection no longer
//     belongs to the chosen group);
//   - a new material_type clears material_id and unit_of_measure;
//   - a new material_id pulls unit_of_measure from the material
//     reference table, clearing it when the material is unknown;
//   - item_type never clears the other branch, so toggling back
//     restores the user's previous input.
//
// It returns the row after the update.
func ApplyField(d *Draft, i int, field string, value any, units MaterialUnits) DraftItem {
	if d == nil || i < 0 || i >= len(d.Rows) {
		return DraftItem{}
	}

	row := d.UpdateField(i, field, value)

	switch field {
	case "service_type":
		row.ServiceID = ""
	case "material_type":
		row.MaterialID = ""
		row.UnitOfMeasure = ""
	case "material_id":
		row.UnitOfMeasure = ""
		if units != nil {
			if unit, ok := units.UnitForMaterial(row.MaterialID); ok {
				row.UnitOfMeasure = unit
			}
		}
	}

	d.Rows[i] = row
	return row
}
