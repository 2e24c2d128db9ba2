package scale

import (
	"math"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
)

// Axis is a scaled range with its tick count.
type Axis struct {
	Range
	Ticks TickCount `json:"ticks" yaml:"ticks"`
}

// NormalizeAxis normalizes [lower, upper] into an Axis.
func NormalizeAxis(lower, upper float64) Axis {
	lo, hi, tc := NormalizeRange(lower, upper)
	return Axis{Range: Range{Min: lo, Max: hi}, Ticks: tc}
}

// step returns the distance between two major ticks.
func (a Axis) step() float64 {
	return a.Span() / float64(a.Ticks.Major)
}

// stretch adds delta major steps to a, split across both ends when a
// crosses zero so that zero stays on a major tick. An axis below zero grows
// downwards so that it never comes to cross zero off a tick.
func (a *Axis) stretch(delta int) {
	step := a.step()
	switch {
	case a.Straddles():
		a.Min -= float64(delta-delta/2) * step
		a.Max += float64(delta/2) * step
	case a.Max <= 0:
		a.Min -= float64(delta) * step
	default:
		a.Max += float64(delta) * step
	}
	a.Ticks.Major += delta
}

// group widens a so that its major ticks fall on every k-th current tick,
// k being the smallest factor that brings the count down to coarser or
// below, and returns the resulting major count, at least coarser. Zero
// remains a major tick.
func (a *Axis) group(coarser int) int {
	f := a.Ticks.Major
	k := (f + coarser - 1) / coarser
	step := a.step()
	if !a.Straddles() {
		if a.Max <= 0 {
			a.Min -= float64(k*coarser-f) * step
		} else {
			a.Max += float64(k*coarser-f) * step
		}
		return coarser
	}
	nl := int(math.Round(-a.Min / step))
	nu := f - nl
	gl := (nl + k - 1) / k * k
	gu := (nu + k - 1) / k * k
	a.Min -= float64(gl-nl) * step
	a.Max += float64(gu-nu) * step
	n := (gl + gu) / k
	if n < coarser {
		a.Max += float64((coarser-n)*k) * step
		n = coarser
	}
	return n
}

// Harmonize gives the primary (y) and secondary (s) axes the same major
// tick count so that their gridlines coincide. When one grid has materially
// more ticks (finer*10 > coarser*15) the finer grid is kept and the other
// axis is stretched to it; otherwise both take the coarser grid and the
// finer axis is widened to put a major tick on every other line. Both
// returned ranges contain the given ones and an axis that crosses zero
// keeps a major tick on it. A degenerate axis adopts the other one
// wholesale. If aligning the grids would overflow, both axes are returned
// as given.
func Harmonize(y, s Axis) (Axis, Axis) {
	hy, hs := harmonize(y, s)
	if !hy.finite() || !hs.finite() {
		return y, s
	}
	return hy, hs
}

func harmonize(y, s Axis) (Axis, Axis) {
	switch {
	case y.Ticks.IsZero():
		return s, s
	case s.Ticks.IsZero():
		return y, y
	}
	if y.Ticks.Major == s.Ticks.Major {
		s.Ticks = y.Ticks
		return y, s
	}

	fine, coarse := &y, &s
	if s.Ticks.Major > y.Ticks.Major {
		fine, coarse = &s, &y
	}
	f, c := fine.Ticks.Major, coarse.Ticks.Major

	if f*10 > c*15 {
		coarse.stretch(f - c)
		coarse.Ticks = fine.Ticks
		return y, s
	}

	n := fine.group(c)
	if n > c {
		coarse.stretch(n - c)
	}
	fine.Ticks = coarse.Ticks
	return y, s
}

type extent struct {
	min, max float64
}

func emptyExtent() extent {
	return extent{min: math.Inf(1), max: math.Inf(-1)}
}

// add widens e to v; NaN is ignored.
func (e *extent) add(v float64) {
	if v < e.min {
		e.min = v
	}
	if v > e.max {
		e.max = v
	}
}

func (e extent) union(o extent) extent {
	return extent{min: math.Min(e.min, o.min), max: math.Max(e.max, o.max)}
}

// extents scans every point of pd once and returns the x, primary y and
// secondary y extents.
func extents(pd models.PlotData) (x, y, s extent) {
	x, y, s = emptyExtent(), emptyExtent(), emptyExtent()
	show := pd.Settings.ShowSecondaryAxis
	for _, line := range pd.PlotLines {
		target := &y
		if line.Secondary && show {
			target = &s
		}
		for _, p := range line.Values {
			x.add(p.X)
			target.add(p.Y)
		}
	}
	if !show {
		s = y
	}
	if pd.HasPrimaryLines() != pd.HasSecondaryLines() {
		y = y.union(s)
		s = y
	}
	return x, y, s
}

// AxesScale returns a copy of pd whose x, y and secondary axes enclose all
// of its points. Titles and visibility of the axes are kept. Unless
// IndependentTics is set, the two y axes share one tick count. A plot
// without lines is returned unchanged.
func AxesScale(pd models.PlotData) models.PlotData {
	if len(pd.PlotLines) == 0 {
		return pd
	}
	xe, ye, se := extents(pd)
	x := NormalizeAxis(xe.min, xe.max)
	y := NormalizeAxis(ye.min, ye.max)
	s := NormalizeAxis(se.min, se.max)

	if !s.Ticks.IsZero() && !pd.Settings.IndependentTics {
		y, s = Harmonize(y, s)
	} else {
		y.Ticks = orDefault(y.Ticks)
		s.Ticks = orDefault(s.Ticks)
	}
	x.Ticks = orDefault(x.Ticks)

	out := pd
	out.Settings = pd.Settings.Clone()
	out.Settings.XAxis = axisParameters(x, pd.Settings.XAxis)
	out.Settings.YAxis = axisParameters(y, pd.Settings.YAxis)
	out.Settings.SAxis = axisParameters(s, pd.Settings.SAxis)
	return out
}

// ScaleAxes is AxesScale when pd has AutoScale set, else it returns pd.
func ScaleAxes(pd models.PlotData) models.PlotData {
	if !pd.Settings.AutoScale {
		return pd
	}
	return AxesScale(pd)
}

func orDefault(tc TickCount) TickCount {
	if tc.IsZero() {
		return DefaultTicks
	}
	return tc
}

func axisParameters(a Axis, prior *models.AxisParameters) *models.AxisParameters {
	p := models.DefaultAxisParameters()
	if prior != nil {
		p.Title = prior.Title
		p.Show = prior.Show
		p.HideTitle = prior.HideTitle
	}
	p.Min, p.Max = a.Min, a.Max
	p.MajorTics, p.MinorTics = a.Ticks.Major, a.Ticks.Minor
	return &p
}
