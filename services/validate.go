package services

// IsRowValid reports whether a draft row carries enough data to be
// persisted. A material row needs a material and a positive price; a
// service row needs a service and a positive price. A row without an
// item type is never valid. Quantity is not a gate: it defaults to 1
// at submission when left unset.
func IsRowValid(row DraftItem) bool {
	switch row.ItemType {
	case ItemTypeMaterial:
		return row.MaterialID != "" && row.Price > 0
	case ItemTypeService:
		return row.ServiceID != "" && row.Price > 0
	}
	return false
}

// IsFormValid reports whether every row of the draft is valid. Used to
// enable the strict "submit all" affordance; submission itself filters
// through ValidRows instead.
func IsFormValid(rows []DraftItem) bool {
	for _, row := range rows {
		if !IsRowValid(row) {
			return false
		}
	}
	return len(rows) > 0
}

// ValidRows returns the submittable subset of rows in their original
// order, plus the number of rows that were skipped.
func ValidRows(rows []DraftItem) ([]DraftItem, int) {
	var valid []DraftItem
	for _, row := range rows {
		if IsRowValid(row) {
			valid = append(valid, row)
		}
	}
	return valid, len(rows) - len(valid)
}
