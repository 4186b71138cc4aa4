package models

// Metrics holds the per-sheet score inputs and the representativeness score.
type Metrics struct {
	// MeanStd is the mean of the dispersion profile over defined rows.
	// Undefined when no axis row has two or more contributing lines.
	MeanStd Value `json:"mean_std"`
	// Amplitude is max minus min of the representative profile over defined
	// rows. Undefined when every row of the profile is undefined.
	Amplitude Value `json:"amplitude"`
	// Score is Amplitude / max(MeanStd, epsilon), or 0 when Amplitude is
	// undefined. Never negative.
	Score float64 `json:"score"`
}

// SheetProfile is the aggregation result for one sheet: the common distance
// axis, the representative (mean) profile, the dispersion (sample standard
// deviation) profile, and the score metrics.
type SheetProfile struct {
	// Sheet is the source worksheet name.
	Sheet string `json:"sheet"`
	// Axis is the common distance axis, strictly ascending.
	Axis []float64 `json:"axis"`
	// Mean is the representative profile, row-aligned with Axis.
	Mean []Value `json:"mean"`
	// Std is the dispersion profile, row-aligned with Axis.
	Std []Value `json:"std"`
	// Dropped names response lines excluded from aggregation (fewer than two
	// valid points, fewer than two distinct distances, or a failed
	// interpolator fit).
	Dropped []string `json:"dropped,omitempty"`
	// Metrics holds the score inputs and the score itself.
	Metrics Metrics `json:"metrics"`
}

// Workbook groups the parsed sheets of one survey file.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets contains the parsed sheets in workbook order.
	Sheets []Sheet `json:"sheets"`
}
