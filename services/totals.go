package services

// RowTotal computes the monetary total of one draft row:
// quantity * price * coefficient. A zero/unset coefficient counts as 1
// so an untouched multiplier never collapses the total; unset quantity
// and price count as 0.
func RowTotal(row DraftItem) float64 {
	coef := row.Coefficient
	if coef == 0 {
		coef = 1
	}
	return row.Quantity * row.Price * coef
}

// GrandTotal sums RowTotal over every row, valid or not. Incomplete
// rows contribute whatever their fields multiply out to (usually zero).
// It is a display aid, not a submission gate, and is recomputed on
// every call rather than cached.
func GrandTotal(rows []DraftItem) float64 {
	var sum float64
	for _, row := range rows {
		sum += RowTotal(row)
	}
	return sum
}
