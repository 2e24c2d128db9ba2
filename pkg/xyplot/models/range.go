package models

// CellRange represents cell coordinate bounds on one sheet.
type CellRange struct {
	// Sheet is the sheet owning the range.
	Sheet string `json:"sheet" yaml:"sheet"`
	// R1 is the start row (1-based).
	R1 int `json:"r1" yaml:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1" yaml:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2" yaml:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2" yaml:"c2"`
}

// Cells returns the number of cells covered by the range.
func (r CellRange) Cells() int {
	if r.R2 < r.R1 || r.C2 < r.C1 {
		return 0
	}
	return (r.R2 - r.R1 + 1) * (r.C2 - r.C1 + 1)
}
