// Package models defines data structures for plots, axes and workbook charts.
package models

import "github.com/jinzhu/copier"

// DataPoint is a single (x, y) sample of a plot line.
type DataPoint struct {
	// X is the x axis value.
	X float64 `json:"x" yaml:"x"`
	// Y is the y axis value.
	Y float64 `json:"y" yaml:"y"`
	// Label is an optional point label.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// PlotLine is an ordered sequence of points drawn against either the
// primary or the secondary y axis.
type PlotLine struct {
	// Values are the points of the line.
	Values []DataPoint `json:"values,omitempty" yaml:"values,omitempty"`
	// Secondary is true if the line uses the secondary (right-side) axis.
	Secondary bool `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	// Legend is the optional line name.
	Legend string `json:"legend,omitempty" yaml:"legend,omitempty"`
}

// AxisParameters is the extent, tick counts and title of one axis.
type AxisParameters struct {
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
	MajorTics int     `json:"major_tics" yaml:"major_tics"`
	MinorTics int     `json:"minor_tics" yaml:"minor_tics"`
	Title     string  `json:"title,omitempty" yaml:"title,omitempty"`
	Show      bool    `json:"show" yaml:"show"`
	HideTitle bool    `json:"hide_title,omitempty" yaml:"hide_title,omitempty"`
	// Labels are the formatted major gridline values, filled in verbose output.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// DefaultAxisParameters returns a visible [0,1] axis with a 10x5 grid.
func DefaultAxisParameters() AxisParameters {
	return AxisParameters{Min: 0, Max: 1, MajorTics: 10, MinorTics: 5, Show: true}
}

// Point is a position in plot-relative coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// PlotSettings holds the axes and presentation flags of a plot.
type PlotSettings struct {
	// Title is the plot title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	XAxis *AxisParameters `json:"x_axis,omitempty" yaml:"x_axis,omitempty"`
	YAxis *AxisParameters `json:"y_axis,omitempty" yaml:"y_axis,omitempty"`
	SAxis *AxisParameters `json:"s_axis,omitempty" yaml:"s_axis,omitempty"`

	// SizeMinor and SizeMajor are tick mark lengths relative to the plot size.
	SizeMinor float64 `json:"size_minor" yaml:"size_minor"`
	SizeMajor float64 `json:"size_major" yaml:"size_major"`
	// Format is the printf format used for tick labels; empty prints the
	// shortest decimal form.
	Format string `json:"format" yaml:"format"`

	// ShowSecondaryAxis routes secondary lines to their own y axis.
	ShowSecondaryAxis bool `json:"show_secondary_axis" yaml:"show_secondary_axis"`
	// AutoScale recomputes the axes whenever the data changes.
	AutoScale bool `json:"auto_scale" yaml:"auto_scale"`
	// IndependentTics disables aligning the primary and secondary grids.
	IndependentTics bool `json:"independent_tics" yaml:"independent_tics"`

	Legend    bool  `json:"legend" yaml:"legend"`
	LegendPos Point `json:"legend_pos" yaml:"legend_pos"`
}

// DefaultPlotSettings returns the settings of a new plot.
func DefaultPlotSettings() PlotSettings {
	return PlotSettings{
		SizeMinor: 0.005,
		SizeMajor: 0.01,
		AutoScale: true,
		Legend:    true,
	}
}

// Clone returns a deep copy of s; the axis pointers of the copy are not
// shared with s.
func (s PlotSettings) Clone() PlotSettings {
	var c PlotSettings
	if err := copier.CopyWithOption(&c, &s, copier.Option{DeepCopy: true}); err != nil {
		c = s
		c.XAxis = cloneAxis(s.XAxis)
		c.YAxis = cloneAxis(s.YAxis)
		c.SAxis = cloneAxis(s.SAxis)
	}
	return c
}

func cloneAxis(a *AxisParameters) *AxisParameters {
	if a == nil {
		return nil
	}
	c := *a
	c.Labels = append([]string(nil), a.Labels...)
	return &c
}

// PlotData is everything needed to draw one plot.
type PlotData struct {
	PlotLines []PlotLine   `json:"plot_lines,omitempty" yaml:"plot_lines,omitempty"`
	Settings  PlotSettings `json:"settings" yaml:"settings"`
	PlotName  string       `json:"plot_name,omitempty" yaml:"plot_name,omitempty"`
}

// HasPrimaryLines reports whether any line uses the primary y axis.
func (pd PlotData) HasPrimaryLines() bool {
	for _, l := range pd.PlotLines {
		if !l.Secondary {
			return true
		}
	}
	return false
}

// HasSecondaryLines reports whether any line uses the secondary y axis.
func (pd PlotData) HasSecondaryLines() bool {
	for _, l := range pd.PlotLines {
		if l.Secondary {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of pd.
func (pd PlotData) Clone() PlotData {
	c := PlotData{Settings: pd.Settings.Clone(), PlotName: pd.PlotName}
	if pd.PlotLines != nil {
		c.PlotLines = make([]PlotLine, len(pd.PlotLines))
		for i, l := range pd.PlotLines {
			l.Values = append([]DataPoint(nil), l.Values...)
			c.PlotLines[i] = l
		}
	}
	return c
}
