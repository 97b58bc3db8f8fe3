package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateEstimatePDF renders an estimate with its line items as a PDF
// using maroto/v2 and returns the raw bytes.
func GenerateEstimatePDF(data *EstimateExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	addEstimateTableHeader(m)
	for _, r := range data.Rows {
		addEstimateTableRow(m, r)
	}
	addEstimateTotal(m, data)
	addEstimateFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addEstimateHeader adds the title, estimate number and block line.
func addEstimateHeader(m core.Maroto, data *EstimateExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	subtitle := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	subtitleRight := subtitle
	subtitleRight.Align = align.Right

	left := data.Number
	if data.BlockName != "" {
		if left != "" {
			left += "  /  "
		}
		left += data.BlockName
	}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New(left, subtitle)),
			col.New(6).Add(text.New(fmt.Sprintf("Date: %s", data.CreatedDate), subtitleRight)),
		),
	)

	m.AddRows(row.New(4))
}

// addEstimateTableHeader adds the column header row.
func addEstimateTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Type", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Name", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Subsection", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("UoM", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)
}

// addEstimateTableRow adds a single line-item row, shading service rows
// so the two item types are easy to tell apart.
func addEstimateTableRow(m core.Maroto, r EstimateExportRow) {
	var cellStyle *props.Cell
	if r.ItemType == string(ItemTypeService) {
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colIndex := col.New(1).Add(text.New(r.Index, baseText))
	colType := col.New(1).Add(text.New(r.ItemType, baseText))
	colName := col.New(3).Add(text.New(r.Name, leftText))
	colSub := col.New(2).Add(text.New(r.Subsection, leftText))
	colQty := col.New(1).Add(text.New(formatQty(r.Qty), rightText))
	colUoM := col.New(1).Add(text.New(r.UoM, baseText))
	colPrice := col.New(1).Add(text.New(FormatMoney(r.Price, ""), rightText))
	colTotal := col.New(2).Add(text.New(FormatMoney(r.Total, r.Currency), rightText))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colType = colType.WithStyle(cellStyle)
		colName = colName.WithStyle(cellStyle)
		colSub = colSub.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUoM = colUoM.WithStyle(cellStyle)
		colPrice = colPrice.WithStyle(cellStyle)
		colTotal = colTotal.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colType,
			colName,
			colSub,
			colQty,
			colUoM,
			colPrice,
			colTotal,
		),
	)
}

// addEstimateTotal adds the grand-total band at the bottom of the table.
func addEstimateTotal(m core.Maroto, data *EstimateExportData) {
	m.AddRows(row.New(6))

	totalBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	totalCell := &props.Cell{BackgroundColor: totalBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("Grand Total", labelStyle),
			).WithStyle(totalCell),
			col.New(4).Add(
				text.New(FormatMoney(data.GrandTotal, ""), labelStyle),
			).WithStyle(totalCell),
		),
	)
}

// addEstimateFooter adds the generated-date line.
func addEstimateFooter(m core.Maroto, data *EstimateExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty formats whole quantities without decimals and fractional
// ones with two decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
