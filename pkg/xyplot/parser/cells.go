package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
	"github.com/xuri/excelize/v2"
)

// ErrReference is returned when a series formula is not a cell reference.
var ErrReference = errors.New("unsupported range reference")

// ErrNoValues is returned when a series has no numeric Y values.
var ErrNoValues = errors.New("series has no numeric values")

// ReadRange returns the raw values of the cells in rng in row-major order.
// Empty cells are returned as empty strings.
func ReadRange(f *excelize.File, rng models.CellRange) ([]string, error) {
	values := make([]string, 0, rng.Cells())

	for row := rng.R1; row <= rng.R2; row++ {
		for col := rng.C1; col <= rng.C2; col++ {
			cellName, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			v, err := f.GetCellValue(rng.Sheet, cellName, excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, err
			}
			values = append(values, strings.TrimSpace(v))
		}
	}

	return values, nil
}

// ReadRangeValues reads the cells a series formula refers to, resolving
// defined names first.
func ReadRangeValues(f *excelize.File, ref string, names map[string]string) ([]string, error) {
	resolved := ResolveReference(ref, names)
	areas, ok := ParseReference(resolved)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrReference, ref)
	}

	var values []string
	for _, area := range areas {
		v, err := ReadRange(f, area)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", resolved, err)
		}
		values = append(values, v...)
	}

	return values, nil
}

// SeriesLine reads a chart series' cells into a plot line. X values that are
// missing or not all numeric are replaced by the point index (1..n) and kept
// as point labels. Points without a numeric Y value are skipped.
func SeriesLine(f *excelize.File, series models.ChartSeries, names map[string]string) (models.PlotLine, error) {
	line := models.PlotLine{
		Secondary: series.Secondary,
		Legend:    series.Name,
	}

	if series.YRange == "" {
		return line, ErrNoValues
	}
	ys, err := ReadRangeValues(f, series.YRange, names)
	if err != nil {
		return line, err
	}

	var xs []string
	if series.XRange != "" {
		if xs, err = ReadRangeValues(f, series.XRange, names); err != nil {
			return line, err
		}
	}
	numericX := len(xs) >= len(ys) && allNumeric(xs[:len(ys)])

	for i, yv := range ys {
		y, ok := parseNumber(yv)
		if !ok {
			continue
		}
		p := models.DataPoint{X: float64(i + 1), Y: y}
		if numericX {
			p.X, _ = parseNumber(xs[i])
		} else if i < len(xs) {
			p.Label = xs[i]
		}
		line.Values = append(line.Values, p)
	}

	if len(line.Values) == 0 {
		return line, ErrNoValues
	}

	if line.Legend == "" && series.NameRange != "" {
		if v, err := ReadRangeValues(f, series.NameRange, names); err == nil && len(v) > 0 {
			line.Legend = v[0]
		}
	}

	return line, nil
}

func allNumeric(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, ok := parseNumber(v); !ok {
			return false
		}
	}
	return true
}

// parseNumber parses a cell value as a finite float64.
func parseNumber(s string) (float64, bool) {
	switch v := parseValue(s).(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	}
	return 0, false
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
