package services

import "testing"

func TestIsRowValid(t *testing.T) {
	tests := []struct {
		name   string
		row    DraftItem
		expect bool
	}{
		{"material complete", DraftItem{ItemType: ItemTypeMaterial, MaterialID: "m1", Price: 100}, true},
		{"material without material", DraftItem{ItemType: ItemTypeMaterial, Price: 100}, false},
		{"material without price", DraftItem{ItemType: ItemTypeMaterial, MaterialID: "m1"}, false},
		{"material negative price", DraftItem{ItemType: ItemTypeMaterial, MaterialID: "m1", Price: -5}, false},
		{"service complete", DraftItem{ItemType: ItemTypeService, ServiceID: "s1", Price: 50}, true},
		{"service without service", DraftItem{ItemType: ItemTypeService, Price: 50}, false},
		{"service without price", DraftItem{ItemType: ItemTypeService, ServiceID: "s1"}, false},
		{"no item type", DraftItem{MaterialID: "m1", ServiceID: "s1", Price: 100}, false},
		{"empty row", DraftItem{}, false},
		{"material ignores stale service branch", DraftItem{ItemType: ItemTypeMaterial, MaterialID: "m1", ServiceID: "s1", Price: 10}, true},
		{"material valid without quantity", DraftItem{ItemType: ItemTypeMaterial, MaterialID: "m1", Price: 10, Quantity: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRowValid(tt.row); got != tt.expect {
				t.Errorf("IsRowValid(%+v) = %v, want %v", tt.row, got, tt.expect)
			}
		})
	}
}

func TestIsFormValid(t *testing.T) {
	valid := DraftItem{ItemType: ItemTypeMaterial, MaterialID: "m1", Price: 100}
	invalid := DraftItem{ItemType: ItemTypeMaterial}

	tests := []struct {
		name   string
		rows   []DraftItem
		expect bool
	}{
		{"all valid", []DraftItem{valid, valid}, true},
		{"one invalid", []DraftItem{valid, invalid}, false},
		{"all invalid", []DraftItem{invalid}, false},
		{"empty draft", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFormValid(tt.rows); got != tt.expect {
				t.Errorf("IsFormValid() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestValidRows(t *testing.T) {
	rows := []DraftItem{
		{ItemType: ItemTypeMaterial, MaterialID: "m1", Price: 10, Comment: "keep-1"},
		{ItemType: ItemTypeMaterial},
		{ItemType: ItemTypeService, ServiceID: "s1", Price: 20, Comment: "keep-2"},
		{},
	}

	valid, skipped := ValidRows(rows)
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(valid))
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", skipped)
	}
	if valid[0].Comment != "keep-1" || valid[1].Comment != "keep-2" {
		t.Errorf("valid rows out of order: %+v", valid)
	}
}

func TestValidRows_AllInvalid(t *testing.T) {
	valid, skipped := ValidRows([]DraftItem{{}, {ItemType: ItemTypeService}})
	if len(valid) != 0 || skipped != 2 {
		t.Errorf("expected 0 valid / 2 skipped, got %d / %d", len(valid), skipped)
	}
}
