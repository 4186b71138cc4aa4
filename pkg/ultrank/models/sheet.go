package models

// Line is a single response line: one numeric column of measured values
// against distance. Values is row-aligned with the sheet's Distance column.
type Line struct {
	// Name is the column header, or a synthetic name when the sheet has no
	// header row.
	Name string `json:"name"`
	// Values contains the coerced cell values, one per sheet row.
	Values []Value `json:"values"`
}

// Sheet is one table within a survey workbook: a distance column followed by
// one or more response lines, all coerced to optional numeric values.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Distance contains the first column's coerced values.
	Distance []Value `json:"distance"`
	// Lines contains the remaining columns. Empty when the worksheet had
	// fewer than two columns.
	Lines []Line `json:"lines"`
}
