package xyplot

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoData indicates the workbook holds neither charts nor plottable tables.
var ErrNoData = errors.New("no plottable data")

// SeriesError represents a chart series or table that could not be read.
type SeriesError struct {
	SheetName string
	Chart     string
	Series    string
	Err       error
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("series %q of %q in sheet %q: %v", e.Series, e.Chart, e.SheetName, e.Err)
}

func (e *SeriesError) Unwrap() error {
	return e.Err
}

// NewSeriesError creates a new SeriesError.
func NewSeriesError(sheetName, chart, series string, err error) *SeriesError {
	return &SeriesError{
		SheetName: sheetName,
		Chart:     chart,
		Series:    series,
		Err:       err,
	}
}
