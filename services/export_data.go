package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// EstimateExportRow is one line item of an estimate export.
type EstimateExportRow struct {
	Index      string
	ItemType   string
	Name       string
	Subsection string
	Qty        float64
	UoM        string
	Coef       float64
	Price      float64
	Currency   string
	Total      float64
	Comment    string
}

// EstimateExportData holds everything the Excel and PDF writers need.
type EstimateExportData struct {
	Title       string
	Number      string
	BlockName   string
	CreatedDate string
	Rows        []EstimateExportRow
	GrandTotal  float64
}

// BuildEstimateExport loads an estimate with its line items and resolves
// reference ids to display names through the cache.
func BuildEstimateExport(app *pocketbase.PocketBase, cache *RefCache, estimateID string) (*EstimateExportData, error) {
	estimate, err := app.FindRecordById("material_estimates", estimateID)
	if err != nil {
		return nil, fmt.Errorf("estimate not found: %w", err)
	}

	data := &EstimateExportData{
		Title:       estimate.GetString("title"),
		Number:      estimate.GetString("number"),
		CreatedDate: time.Now().Format("02.01.2006"),
	}

	if blockID := estimate.GetString("block"); blockID != "" {
		if block, err := app.FindRecordById("blocks", blockID); err == nil {
			data.BlockName = block.GetString("name")
		}
	}

	// Warm the sets Lookup reads from below
	for _, set := range []string{"materials", "services", "units", "currencies"} {
		if _, err := cache.Get(app, set); err != nil {
			return nil, err
		}
	}

	items, err := app.FindRecordsByFilter(
		"estimate_items",
		"material_estimate = {:estimateId}",
		"sort_order",
		0,
		0,
		map[string]any{"estimateId": estimateID},
	)
	if err != nil {
		return nil, fmt.Errorf("load estimate items: %w", err)
	}

	for i, item := range items {
		row := EstimateExportRow{
			Index:    fmt.Sprintf("%d", i+1),
			ItemType: item.GetString("item_type"),
			Qty:      item.GetFloat("quantity_planned"),
			Coef:     item.GetFloat("coefficient"),
			Price:    item.GetFloat("price"),
			Comment:  item.GetString("comment"),
		}

		switch row.ItemType {
		case string(ItemTypeMaterial):
			row.Name = cache.Lookup("materials", item.GetString("material"))
		case string(ItemTypeService):
			row.Name = cache.Lookup("services", item.GetString("service"))
		}

		row.Subsection = item.GetString("subsection")
		if row.Subsection != "" {
			if stage, err := app.FindRecordById("stages", row.Subsection); err == nil {
				row.Subsection = stage.GetString("name")
			}
		}

		row.UoM = cache.Lookup("units", item.GetString("unit_of_measure"))
		row.Currency = cache.Lookup("currencies", item.GetString("currency"))

		coef := row.Coef
		if coef == 0 {
			coef = 1
		}
		row.Total = row.Qty * row.Price * coef

		data.Rows = append(data.Rows, row)
		data.GrandTotal += row.Total
	}

	return data, nil
}
