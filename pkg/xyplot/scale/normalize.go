package scale

import "math"

// safe lets rounded bounds sit up to 0.1% inside the data.
const safe = 0.999

// MaxStraddleTicks bounds the major count of a range that crosses zero.
const MaxStraddleTicks = 11

// Range is a closed interval on one axis.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Straddles reports whether zero lies strictly inside r.
func (r Range) Straddles() bool { return r.Min < 0 && r.Max > 0 }

// finite reports whether both bounds and the span of r are finite numbers.
func (r Range) finite() bool {
	for _, v := range []float64{r.Min, r.Max, r.Span()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains reports whether o lies within r.
func (r Range) Contains(o Range) bool { return r.Min <= o.Min && r.Max >= o.Max }

// unit returns the decimal scale one order below the leading digit of the
// larger magnitude bound, or false if no such scale exists.
func unit(lower, upper float64) (float64, bool) {
	nabs := math.Max(math.Abs(lower), math.Abs(upper))
	if nabs == 0 || math.IsInf(nabs, 0) {
		return 0, false
	}
	return math.Pow10(int(math.Floor(math.Log10(nabs*safe))) - 1), true
}

// NormalizeRange returns round bounds enclosing [lower, upper] and the tick
// count to draw between them. The bounds may be given in either order. When
// the result crosses zero, zero is a major tick and there are at most
// MaxStraddleTicks major ticks. NaN, infinite or all-zero input, and input
// so close to the float64 limits that its rounded bounds overflow, yields
// [0, 1] with a zero TickCount.
func NormalizeRange(lower, upper float64) (float64, float64, TickCount) {
	if lower > upper {
		lower, upper = upper, lower
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return 0, 1, TickCount{}
	}
	e, ok := unit(lower, upper)
	if !ok {
		return 0, 1, TickCount{}
	}
	if lower == upper {
		lower -= 0.5 * e
		upper += 0.5 * e
	}

	var imin, imax float64
	if upper < 0 {
		imax = math.Ceil(upper / safe / e)
	} else {
		imax = math.Ceil(upper * safe / e)
	}
	if lower < 0 {
		imin = math.Floor(lower * safe / e)
	} else {
		imin = math.Floor(lower / safe / e)
	}

	if imax <= imin {
		imax = imin + 1
	}

	var tc TickCount
	if imin < 0 && imax > 0 {
		imin, imax, tc = straddle(imin, imax)
	} else {
		imin, imax, tc = PlanTicks(imin, imax)
	}
	if r := (Range{Min: e * imin, Max: e * imax}); !r.finite() || tc.Major < 0 {
		return 0, 1, TickCount{}
	}
	return e * imin, e * imax, tc
}

// straddle plans a scaled range crossing zero so that zero is a major tick.
// Each side is planned on its own; if their steps differ, the side with the
// larger magnitude sets the step and the other side is stretched to whole
// steps. Too many ticks are then folded pairwise, first extending any side
// with an odd count by one step.
func straddle(imin, imax float64) (float64, float64, TickCount) {
	_, imax, pu := PlanTicks(0, imax)
	imin, _, pl := PlanTicks(imin, 0)

	nu, nl := pu.Major, pl.Major
	if imax*float64(pl.Major) != -imin*float64(pu.Major) {
		if imax >= -imin {
			step := imax / float64(nu)
			nl = wholeSteps(-imin, step)
			imin = -float64(nl) * step
		} else {
			step := -imin / float64(nl)
			nu = wholeSteps(imax, step)
			imax = float64(nu) * step
		}
	}

	for nu+nl > MaxStraddleTicks {
		step := (imax - imin) / float64(nu+nl)
		if nu%2 != 0 {
			imax += step
			nu++
		}
		if nl%2 != 0 {
			imin -= step
			nl++
		}
		nu /= 2
		nl /= 2
	}
	return imin, imax, TickCount{Major: nu + nl, Minor: DefaultTicks.Minor}
}

// wholeSteps returns the number of steps needed to cover length, ignoring
// rounding noise in the division.
func wholeSteps(length, step float64) int {
	return int(math.Ceil(length/step - 1e-9))
}
