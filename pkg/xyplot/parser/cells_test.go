package parser

import (
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
	"github.com/xuri/excelize/v2"
)

// openTestWorkbook saves f to a temporary file and opens it again.
func openTestWorkbook(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { f2.Close() })
	return f2
}

func newSeriesWorkbook(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Time")
	f.SetCellValue(sheetName, "B1", "Volts")
	f.SetCellValue(sheetName, "C1", "Label")
	for i, v := range []float64{1.5, 2.5, 4, 8} {
		row := i + 2
		f.SetCellValue(sheetName, "A"+strconv.Itoa(row), i*10)
		f.SetCellValue(sheetName, "B"+strconv.Itoa(row), v)
		f.SetCellValue(sheetName, "C"+strconv.Itoa(row), "p"+strconv.Itoa(i))
	}
	f.SetCellValue(sheetName, "B4", "n/a")

	if err := f.SetDefinedName(&excelize.DefinedName{Name: "Volts", RefersTo: "Sheet1!$B$2:$B$5"}); err != nil {
		t.Fatalf("SetDefinedName failed: %v", err)
	}
	if err := f.SetDefinedName(&excelize.DefinedName{Name: "Alias", RefersTo: "Volts"}); err != nil {
		t.Fatalf("SetDefinedName failed: %v", err)
	}

	return openTestWorkbook(t, f)
}

func TestReadRange(t *testing.T) {
	f := newSeriesWorkbook(t)

	values, err := ReadRange(f, models.CellRange{Sheet: "Sheet1", R1: 1, C1: 1, R2: 2, C2: 2})
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}

	expected := []string{"Time", "Volts", "0", "1.5"}
	if len(values) != len(expected) {
		t.Fatalf("Expected %d values, got %d", len(expected), len(values))
	}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("values[%d] = %q, expected %q", i, values[i], expected[i])
		}
	}
}

func TestReadRangeValuesResolvesNames(t *testing.T) {
	f := newSeriesWorkbook(t)
	names := DefinedNames(f)

	for _, ref := range []string{"Volts", "=Alias", "Book1.xlsx!Volts", "Sheet1!$B$2:$B$5"} {
		values, err := ReadRangeValues(f, ref, names)
		if err != nil {
			t.Fatalf("ReadRangeValues(%q) failed: %v", ref, err)
		}
		if len(values) != 4 || values[0] != "1.5" {
			t.Errorf("ReadRangeValues(%q) = %v", ref, values)
		}
	}

	if _, err := ReadRangeValues(f, "OFFSET(Sheet1!$A$1,0,0)", names); !errors.Is(err, ErrReference) {
		t.Errorf("Expected ErrReference, got %v", err)
	}
}

func TestSeriesLine(t *testing.T) {
	f := newSeriesWorkbook(t)
	names := DefinedNames(f)

	line, err := SeriesLine(f, models.ChartSeries{
		NameRange: "Sheet1!$B$1",
		XRange:    "Sheet1!$A$2:$A$5",
		YRange:    "Volts",
		Secondary: true,
	}, names)
	if err != nil {
		t.Fatalf("SeriesLine failed: %v", err)
	}

	if line.Legend != "Volts" {
		t.Errorf("Expected legend 'Volts', got %q", line.Legend)
	}
	if !line.Secondary {
		t.Error("Expected secondary line")
	}
	// B4 holds text and is skipped.
	expected := []models.DataPoint{{X: 0, Y: 1.5}, {X: 10, Y: 2.5}, {X: 30, Y: 8}}
	if len(line.Values) != len(expected) {
		t.Fatalf("Expected %d points, got %v", len(expected), line.Values)
	}
	for i := range expected {
		if line.Values[i] != expected[i] {
			t.Errorf("Values[%d] = %+v, expected %+v", i, line.Values[i], expected[i])
		}
	}
}

func TestSeriesLineCategoryLabels(t *testing.T) {
	f := newSeriesWorkbook(t)

	line, err := SeriesLine(f, models.ChartSeries{
		Name:   "Volts",
		XRange: "Sheet1!$C$2:$C$5",
		YRange: "Sheet1!$B$2:$B$5",
	}, nil)
	if err != nil {
		t.Fatalf("SeriesLine failed: %v", err)
	}

	if line.Values[0].X != 1 || line.Values[0].Label != "p0" {
		t.Errorf("Expected index X with label, got %+v", line.Values[0])
	}
	if line.Values[2].X != 4 || line.Values[2].Label != "p3" {
		t.Errorf("Expected index X with label, got %+v", line.Values[2])
	}
}

func TestSeriesLineNoValues(t *testing.T) {
	f := newSeriesWorkbook(t)

	if _, err := SeriesLine(f, models.ChartSeries{}, nil); !errors.Is(err, ErrNoValues) {
		t.Errorf("Expected ErrNoValues, got %v", err)
	}
	if _, err := SeriesLine(f, models.ChartSeries{YRange: "Sheet1!$C$2:$C$5"}, nil); !errors.Is(err, ErrNoValues) {
		t.Errorf("Expected ErrNoValues, got %v", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		value float64
		ok    bool
	}{
		{"42", 42, true},
		{"-0.25", -0.25, true},
		{"1e3", 1000, true},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		value, ok := parseNumber(tt.input)
		if ok != tt.ok || (ok && value != tt.value) {
			t.Errorf("parseNumber(%q) = %v, %v; expected %v, %v", tt.input, value, ok, tt.value, tt.ok)
		}
	}
}
