package models

// ChartSeries represents series metadata for a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name" yaml:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty" yaml:"name_range,omitempty"`
	// XRange is the range reference for X axis values.
	XRange string `json:"x_range,omitempty" yaml:"x_range,omitempty"`
	// YRange is the range reference for Y axis values.
	YRange string `json:"y_range,omitempty" yaml:"y_range,omitempty"`
	// Secondary is true if the series is plotted against the secondary value axis.
	Secondary bool `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// Chart represents chart metadata, its series and the computed axes.
type Chart struct {
	// Name is the chart name.
	Name string `json:"name" yaml:"name"`
	// ChartType is the chart type (e.g., Line, XYScatter).
	ChartType string `json:"chart_type" yaml:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// XAxisTitle is the category/X axis title.
	XAxisTitle string `json:"x_axis_title,omitempty" yaml:"x_axis_title,omitempty"`
	// YAxisTitle is the primary value axis title.
	YAxisTitle string `json:"y_axis_title,omitempty" yaml:"y_axis_title,omitempty"`
	// SAxisTitle is the secondary value axis title.
	SAxisTitle string `json:"s_axis_title,omitempty" yaml:"s_axis_title,omitempty"`
	// YAxisRange is the declared primary Y-axis range [min, max] when available.
	YAxisRange []float64 `json:"y_axis_range,omitempty" yaml:"y_axis_range,omitempty"`
	// W is the chart width in pixels (nil if unknown or not verbose mode).
	W *int `json:"w,omitempty" yaml:"w,omitempty"`
	// H is the chart height in pixels (nil if unknown or not verbose mode).
	H *int `json:"h,omitempty" yaml:"h,omitempty"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series" yaml:"series"`
	// L is the left offset in pixels.
	L int `json:"l" yaml:"l"`
	// T is the top offset in pixels.
	T int `json:"t" yaml:"t"`
	// Plot holds the chart data and its scaled axes.
	Plot *PlotData `json:"plot,omitempty" yaml:"plot,omitempty"`
}

// HasSecondary reports whether any series uses the secondary value axis.
func (c Chart) HasSecondary() bool {
	for _, s := range c.Series {
		if s.Secondary {
			return true
		}
	}
	return false
}
