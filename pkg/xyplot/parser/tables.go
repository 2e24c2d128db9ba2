package parser

import (
	"fmt"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
	// MinRows is the least number of data rows a table needs to be plotted.
	MinRows int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
		MinRows:          2,
	}
}

// DetectTables detects table-like regions in a sheet.
// Returns a list of cell ranges (e.g., "A1:D10") that likely represent tables.
// Tables defined in the workbook are returned as is; otherwise the bounding
// box of the sheet's data is returned when it is dense enough.
func DetectTables(f *excelize.File, sheetName string, params TableDetectionParams) ([]string, error) {
	if tables, err := f.GetTables(sheetName); err == nil && len(tables) > 0 {
		var result []string
		for _, t := range tables {
			result = append(result, t.Range)
		}
		return result, nil
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Find the bounding box of non-empty cells
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil, nil
	}

	// Calculate density
	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)

	if nonEmptyCells < params.MinNonemptyCells {
		return nil, nil
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return nil, nil
	}

	// Convert to Excel range notation
	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	rangeStr := fmt.Sprintf("%s:%s", startCell, endCell)

	return []string{rangeStr}, nil
}

// TableLines turns a table range into plot lines. A first row holding text
// is a header and names the lines. The first numeric column is the X column
// and every other numeric column becomes a line; a table with a single
// numeric column is plotted against the row index.
func TableLines(f *excelize.File, sheetName, rangeStr string, params TableDetectionParams) ([]models.PlotLine, error) {
	area, ok := parseArea(rangeStr)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrReference, rangeStr)
	}
	area.Sheet = sheetName

	cells, err := ReadRange(f, area)
	if err != nil {
		return nil, err
	}

	width := area.C2 - area.C1 + 1
	var grid [][]string
	for i := 0; i+width <= len(cells); i += width {
		grid = append(grid, cells[i:i+width])
	}
	if len(grid) == 0 {
		return nil, nil
	}

	var header []string
	if isHeaderRow(grid[0]) {
		header, grid = grid[0], grid[1:]
	}
	if len(grid) < params.MinRows {
		return nil, nil
	}

	var numeric []int
	for col := 0; col < width; col++ {
		if numericColumn(grid, col) {
			numeric = append(numeric, col)
		}
	}
	if len(numeric) == 0 {
		return nil, nil
	}

	xCol := -1
	yCols := numeric
	if len(numeric) > 1 {
		xCol, yCols = numeric[0], numeric[1:]
	}

	var lines []models.PlotLine
	for _, col := range yCols {
		line := models.PlotLine{Legend: columnLegend(header, col, area.C1)}
		for i, row := range grid {
			y, ok := parseNumber(row[col])
			if !ok {
				continue
			}
			p := models.DataPoint{X: float64(i + 1), Y: y}
			if xCol >= 0 {
				if p.X, ok = parseNumber(row[xCol]); !ok {
					continue
				}
			}
			line.Values = append(line.Values, p)
		}
		if len(line.Values) > 0 {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// isHeaderRow reports whether row holds at least one text cell.
func isHeaderRow(row []string) bool {
	for _, cell := range row {
		if cell == "" {
			continue
		}
		if _, ok := parseValue(cell).(string); ok {
			return true
		}
	}
	return false
}

// numericColumn reports whether the non-empty cells of col are all numbers
// and there are at least two of them.
func numericColumn(grid [][]string, col int) bool {
	count := 0
	for _, row := range grid {
		if row[col] == "" {
			continue
		}
		if _, ok := parseNumber(row[col]); !ok {
			return false
		}
		count++
	}
	return count >= 2
}

func columnLegend(header []string, col, firstCol int) string {
	if col < len(header) && header[col] != "" {
		return header[col]
	}
	name, _ := excelize.ColumnNumberToName(firstCol + col)
	return name
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
