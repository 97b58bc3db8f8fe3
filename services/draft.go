// Package services provides the estimate line-item editor model and
// pure calculation helpers shared by the HTTP handlers.
package services

// ItemType tags a draft line item as a material or a service row.
// The zero value means the user has not picked a type yet.
type ItemType string

const (
	ItemTypeUnset    ItemType = ""
	ItemTypeMaterial ItemType = "material"
	ItemTypeService  ItemType = "service"
)

// DraftItem is one editable row of an estimate before submission.
// Both the service and the material branch keep their values when the
// user toggles item_type back and forth; only the branch matching
// ItemType is validated and submitted.
type DraftItem struct {
	ItemType      ItemType `json:"item_type"`
	ServiceGroup  string   `json:"service_type,omitempty"`
	ServiceID     string   `json:"service_id,omitempty"`
	MaterialType  string   `json:"material_type,omitempty"`
	MaterialID    string   `json:"material_id,omitempty"`
	UnitOfMeasure string   `json:"unit_of_measure,omitempty"`
	SubsectionID  string   `json:"subsection_id,omitempty"`
	Quantity      float64  `json:"quantity_planned"`
	Coefficient   float64  `json:"coefficient"`
	Currency      string   `json:"currency,omitempty"`
	Price         float64  `json:"price"`
	Comment       string   `json:"comment,omitempty"`
}

// Draft is the ordered row store backing the line-item editor.
type Draft struct {
	Rows []DraftItem `json:"rows"`
}

// NewDraft returns a draft seeded with a single empty row.
func NewDraft() *Draft {
	return &Draft{Rows: []DraftItem{{}}}
}

// AddRow appends one empty row. There is no upper bound on row count.
func (d *Draft) AddRow() {
	d.Rows = append(d.Rows, DraftItem{})
}

// RemoveRow deletes the row at index i, keeping the remaining rows in
// their original relative order. Out-of-range indexes are ignored.
func (d *Draft) RemoveRow(i int) {
	if i < 0 || i >= len(d.Rows) {
		return
	}
	d.Rows = append(d.Rows[:i], d.Rows[i+1:]...)
}

// UpdateField replaces a single field of the row at index i and returns
// the new row value. All other fields of the row and all other rows are
// untouched. Unknown fields and out-of-range indexes are ignored.
func (d *Draft) UpdateField(i int, field string, value any) DraftItem {
	if i < 0 || i >= len(d.Rows) {
		return DraftItem{}
	}
	row := d.Rows[i]
	setDraftField(&row, field, value)
	d.Rows[i] = row
	return row
}

// Reset replaces all rows with a single empty row.
func (d *Draft) Reset() {
	d.Rows = []DraftItem{{}}
}

// ResetEmpty clears the draft entirely.
func (d *Draft) ResetEmpty() {
	d.Rows = nil
}

// setDraftField assigns one named field on a row. Numeric fields accept
// float64 (the JSON number type); everything else is a string.
func setDraftField(row *DraftItem, field string, value any) {
	switch field {
	case "item_type":
		if s, ok := value.(string); ok {
			row.ItemType = ItemType(s)
		}
	case "service_type":
		if s, ok := value.(string); ok {
			row.ServiceGroup = s
		}
	case "service_id":
		if s, ok := value.(string); ok {
			row.ServiceID = s
		}
	case "material_type":
		if s, ok := value.(string); ok {
			row.MaterialType = s
		}
	case "material_id":
		if s, ok := value.(string); ok {
			row.MaterialID = s
		}
	case "unit_of_measure":
		if s, ok := value.(string); ok {
			row.UnitOfMeasure = s
		}
	case "subsection_id":
		if s, ok := value.(string); ok {
			row.SubsectionID = s
		}
	case "quantity_planned":
		if f, ok := toFloat(value); ok {
			row.Quantity = f
		}
	case "coefficient":
		if f, ok := toFloat(value); ok {
			row.Coefficient = f
		}
	case "currency":
		if s, ok := value.(string); ok {
			row.Currency = s
		}
	case "price":
		if f, ok := toFloat(value); ok {
			row.Price = f
		}
	case "comment":
		if s, ok := value.(string); ok {
			row.Comment = s
		}
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
