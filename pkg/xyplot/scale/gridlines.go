package scale

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
)

// MajorValues returns the positions of the major gridlines of ap, both ends
// included. It returns nil for a degenerate axis.
func MajorValues(ap models.AxisParameters) []float64 {
	if ap.MajorTics <= 0 || !(ap.Max > ap.Min) {
		return nil
	}
	step := (ap.Max - ap.Min) / float64(ap.MajorTics)
	values := make([]float64, ap.MajorTics+1)
	for i := range values {
		values[i] = clean(ap.Min+float64(i)*step, step)
	}
	values[ap.MajorTics] = ap.Max
	return values
}

// MinorValues returns the positions of the minor gridlines strictly between
// the major gridlines of ap.
func MinorValues(ap models.AxisParameters) []float64 {
	majors := MajorValues(ap)
	if len(majors) < 2 || ap.MinorTics < 2 {
		return nil
	}
	step := (ap.Max - ap.Min) / float64(ap.MajorTics) / float64(ap.MinorTics)
	values := make([]float64, 0, ap.MajorTics*(ap.MinorTics-1))
	for _, m := range majors[:len(majors)-1] {
		for j := 1; j < ap.MinorTics; j++ {
			values = append(values, clean(m+float64(j)*step, step))
		}
	}
	return values
}

// Labels formats the major gridline values of ap with the printf format.
// An empty format prints the shortest decimal form.
func Labels(ap models.AxisParameters, format string) []string {
	values := MajorValues(ap)
	if values == nil {
		return nil
	}
	labels := make([]string, len(values))
	for i, v := range values {
		if format == "" {
			labels[i] = humanize.Ftoa(v)
		} else {
			labels[i] = fmt.Sprintf(format, v)
		}
	}
	return labels
}

// clean drops rounding residue so that a gridline meant to sit on zero is
// exactly zero.
func clean(v, step float64) float64 {
	if math.Abs(v) < math.Abs(step)*1e-9 {
		return 0
	}
	return v
}
