// Package scale computes round axis bounds and tick counts for plots.
package scale

import "math"

// TickCount is the number of major tick intervals on an axis and the number
// of minor subdivisions between two major ticks. A zero Major marks a
// degenerate axis for which callers must substitute DefaultTicks.
type TickCount struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
}

// DefaultTicks is the grid used when no better choice is known.
var DefaultTicks = TickCount{Major: 10, Minor: 5}

// IsZero reports whether t is the degenerate-axis sentinel.
func (t TickCount) IsZero() bool { return t.Major == 0 }

// extension says how far the span of a band is widened.
type extension int

const (
	extendNone extension = iota
	// extendOne widens the span by one unit.
	extendOne
	// extendToCeiling widens the span to the upper bound of its band.
	extendToCeiling
)

// tickBand maps the inclusive span range [lo, hi] to a tick count.
// A zero major takes the span itself as the major count.
type tickBand struct {
	lo, hi       float64
	major, minor int
	ext          extension
}

// tickBands is searched in order; the first band containing the span wins.
var tickBands = []tickBand{
	{2, 2, 10, 4, extendNone},
	{3, 3, 6, 5, extendNone},
	{4, 4, 8, 5, extendNone},
	{5, 5, 10, 5, extendNone},
	{6, 6, 6, 4, extendNone},
	{7, 11, 0, 5, extendNone},
	{12, 12, 6, 4, extendNone},
	{13, 13, 7, 4, extendOne},
	{14, 14, 7, 4, extendNone},
	{15, 15, 10, 3, extendNone},
	{16, 16, 8, 4, extendNone},
	{17, 17, 9, 4, extendOne},
	{18, 18, 9, 4, extendNone},
	{19, 19, 10, 4, extendOne},
	{20, 20, 10, 4, extendNone},
	{21, 21, 7, 3, extendNone},
	{22, 22, 11, 4, extendNone},
	{23, 23, 6, 4, extendOne},
	{24, 24, 6, 4, extendNone},
	{25, 25, 10, 5, extendNone},
	{26, 26, 9, 3, extendOne},
	{27, 27, 9, 3, extendNone},
	{28, 28, 7, 4, extendNone},
	{29, 29, 6, 5, extendOne},
	{30, 30, 6, 5, extendNone},
	{31, 31, 8, 4, extendOne},
	{32, 32, 8, 4, extendNone},
	{33, 33, 11, 3, extendNone},
	{34, 34, 7, 5, extendOne},
	{35, 35, 7, 5, extendNone},
	{36, 40, 8, 5, extendToCeiling},
	{41, 45, 9, 5, extendToCeiling},
	{46, 50, 10, 5, extendToCeiling},
	{51, 55, 11, 5, extendToCeiling},
	{56, 60, 6, 5, extendToCeiling},
	{61, 70, 7, 5, extendToCeiling},
	{71, 80, 8, 5, extendToCeiling},
	{81, 90, 9, 5, extendToCeiling},
	{91, 100, 10, 5, extendToCeiling},
}

// lookupSpan returns the tick count for span d and how much the span has to
// grow to reach the band's round value.
func lookupSpan(d float64) (TickCount, float64) {
	for _, b := range tickBands {
		if d < b.lo || d > b.hi {
			continue
		}
		tc := TickCount{Major: b.major, Minor: b.minor}
		if tc.Major == 0 {
			tc.Major = int(d)
		}
		switch b.ext {
		case extendOne:
			return tc, 1
		case extendToCeiling:
			return tc, b.hi - d
		}
		return tc, 0
	}
	return DefaultTicks, 0
}

// PlanTicks picks a tick count for the range [min, max], given in units of
// one decimal magnitude so that the span is a small whole number. The range
// is widened to the band's round span: a range reaching below zero grows
// downwards and is snapped outwards to whole steps, any other range grows
// upwards. The widened bounds are returned with the tick count.
func PlanTicks(min, max float64) (float64, float64, TickCount) {
	tc, inc := lookupSpan(max - min)

	if min >= 0 {
		return min, max + inc, tc
	}

	min -= inc
	step := int(max-min) / tc.Major
	if step != 0 {
		s := float64(step)
		min = math.Floor(min/s) * s
		max = math.Ceil(max/s) * s
		tc.Major = int(math.Round((max - min) / s))
	}
	return min, max, tc
}
