package services

import "testing"

func TestNewDraft_StartsWithOneEmptyRow(t *testing.T) {
	d := NewDraft()
	if len(d.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(d.Rows))
	}
	if d.Rows[0] != (DraftItem{}) {
		t.Errorf("expected empty row, got %+v", d.Rows[0])
	}
}

func TestDraft_AddRow(t *testing.T) {
	d := NewDraft()
	d.AddRow()
	d.AddRow()
	if len(d.Rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(d.Rows))
	}
}

func TestDraft_RemoveRow(t *testing.T) {
	tests := []struct {
		name      string
		remove    int
		expectLen int
		expectIDs []string
	}{
		{"first row", 0, 2, []string{"b", "c"}},
		{"middle row", 1, 2, []string{"a", "c"}},
		{"last row", 2, 2, []string{"a", "b"}},
		{"negative index ignored", -1, 3, []string{"a", "b", "c"}},
		{"out of range ignored", 3, 3, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Draft{Rows: []DraftItem{
				{MaterialID: "a"},
				{MaterialID: "b"},
				{MaterialID: "c"},
			}}
			d.RemoveRow(tt.remove)
			if len(d.Rows) != tt.expectLen {
				t.Fatalf("expected %d rows, got %d", tt.expectLen, len(d.Rows))
			}
			for i, id := range tt.expectIDs {
				if d.Rows[i].MaterialID != id {
					t.Errorf("row %d: expected %q, got %q", i, id, d.Rows[i].MaterialID)
				}
			}
		})
	}
}

func TestDraft_UpdateField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		check func(DraftItem) bool
	}{
		{"item_type", "item_type", "material", func(r DraftItem) bool { return r.ItemType == ItemTypeMaterial }},
		{"service_type", "service_type", "sg1", func(r DraftItem) bool { return r.ServiceGroup == "sg1" }},
		{"service_id", "service_id", "svc1", func(r DraftItem) bool { return r.ServiceID == "svc1" }},
		{"material_type", "material_type", "mt1", func(r DraftItem) bool { return r.MaterialType == "mt1" }},
		{"material_id", "material_id", "mat1", func(r DraftItem) bool { return r.MaterialID == "mat1" }},
		{"unit_of_measure", "unit_of_measure", "kg", func(r DraftItem) bool { return r.UnitOfMeasure == "kg" }},
		{"subsection_id", "subsection_id", "st1", func(r DraftItem) bool { return r.SubsectionID == "st1" }},
		{"quantity from float", "quantity_planned", 2.5, func(r DraftItem) bool { return r.Quantity == 2.5 }},
		{"quantity from int", "quantity_planned", 3, func(r DraftItem) bool { return r.Quantity == 3 }},
		{"coefficient", "coefficient", 1.15, func(r DraftItem) bool { return r.Coefficient == 1.15 }},
		{"currency", "currency", "RUB", func(r DraftItem) bool { return r.Currency == "RUB" }},
		{"price", "price", 99.5, func(r DraftItem) bool { return r.Price == 99.5 }},
		{"comment", "comment", "note", func(r DraftItem) bool { return r.Comment == "note" }},
		{"unknown field ignored", "bogus", "x", func(r DraftItem) bool { return r == (DraftItem{}) }},
		{"wrong type ignored", "price", "not a number", func(r DraftItem) bool { return r.Price == 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			got := d.UpdateField(0, tt.field, tt.value)
			if !tt.check(got) {
				t.Errorf("UpdateField(%q, %v) row = %+v", tt.field, tt.value, got)
			}
			if d.Rows[0] != got {
				t.Errorf("stored row %+v differs from returned row %+v", d.Rows[0], got)
			}
		})
	}
}

func TestDraft_UpdateField_OnlyTargetRowChanges(t *testing.T) {
	d := &Draft{Rows: []DraftItem{
		{Comment: "first"},
		{Comment: "second"},
	}}
	d.UpdateField(1, "price", 50.0)
	if d.Rows[0].Price != 0 || d.Rows[0].Comment != "first" {
		t.Errorf("row 0 changed: %+v", d.Rows[0])
	}
	if d.Rows[1].Price != 50 || d.Rows[1].Comment != "second" {
		t.Errorf("row 1 wrong: %+v", d.Rows[1])
	}
}

func TestDraft_UpdateField_OutOfRange(t *testing.T) {
	d := NewDraft()
	got := d.UpdateField(5, "price", 10.0)
	if got != (DraftItem{}) {
		t.Errorf("expected empty row for out-of-range index, got %+v", got)
	}
}

func TestDraft_Reset(t *testing.T) {
	d := &Draft{Rows: []DraftItem{{Price: 1}, {Price: 2}}}
	d.Reset()
	if len(d.Rows) != 1 || d.Rows[0] != (DraftItem{}) {
		t.Errorf("expected single empty row after Reset, got %+v", d.Rows)
	}

	d.ResetEmpty()
	if len(d.Rows) != 0 {
		t.Errorf("expected no rows after ResetEmpty, got %d", len(d.Rows))
	}
}
