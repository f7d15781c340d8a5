package report

// Merge is an inclusive, zero-based cell range.
type Merge struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Table is a flat, spreadsheet-ready projection.
type Table struct {
	SheetName    string
	Rows         [][]string
	Merges       []Merge
	ColumnWidths []float64
}
