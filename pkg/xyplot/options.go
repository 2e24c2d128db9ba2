// Package xyplot extracts chart data from Excel workbooks and scales the
// plot axes to round, readable bounds.
package xyplot

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight plots table candidates only (no charts).
	ModeLight Mode = "light"
	// ModeStandard plots charts, falling back to table candidates on sheets without charts.
	ModeStandard Mode = "standard"
	// ModeVerbose is standard plus chart dimensions and the raw data points.
	ModeVerbose Mode = "verbose"
)

// ParseMode returns the Mode named s.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, true
	}
	return "", false
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// ShowSecondaryAxis specifies whether plots get a secondary value axis.
	// If nil, a secondary axis is shown when the chart has secondary series.
	ShowSecondaryAxis *bool
	// IndependentTics specifies whether the secondary axis keeps its own
	// tick count. If nil, defaults to false (ticks are synchronized).
	IndependentTics *bool
	// Force rescales plots even when their settings disable auto-scaling,
	// including charts that declare a fixed value axis.
	Force bool
	// LabelFormat is the printf format of gridline labels. Empty prints the
	// shortest decimal form.
	LabelFormat string
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldShowSecondary returns whether to show the secondary axis.
func (o Options) ShouldShowSecondary(hasSecondary bool) bool {
	if o.ShowSecondaryAxis != nil {
		return *o.ShowSecondaryAxis
	}
	return hasSecondary
}

// ShouldUseIndependentTics returns whether the secondary axis keeps its own
// tick count.
func (o Options) ShouldUseIndependentTics() bool {
	if o.IndependentTics != nil {
		return *o.IndependentTics
	}
	return false
}

// ShouldIncludePoints returns whether plots keep their data points in the
// output.
func (o Options) ShouldIncludePoints() bool {
	return o.Mode == ModeVerbose
}
