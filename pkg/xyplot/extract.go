package xyplot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
	"github.com/josephlevy222/xyplot/pkg/xyplot/parser"
	"github.com/josephlevy222/xyplot/pkg/xyplot/scale"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Extract reads the charts of an Excel file, builds one plot per chart and
// scales its axes. Sheets without charts are plotted from their table
// candidates. When nothing could be plotted the workbook data is returned
// together with ErrNoData.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	bookName := filepath.Base(path)
	sheets := make(map[string]models.SheetData)
	names := parser.DefinedNames(f)

	// Extract charts (requires direct OOXML parsing)
	var chartData map[string][]models.Chart
	if opts.Mode != ModeLight {
		chartData, err = parser.ExtractCharts(path, string(opts.Mode))
		if err != nil {
			log.WithFields(log.Fields{"book": bookName}).Warnf("Could not read charts: %s", err)
		}
	}

	plots := 0
	for _, sheetName := range f.GetSheetList() {
		var sheet models.SheetData

		tables, err := parser.DetectTables(f, sheetName, parser.DefaultTableParams())
		if err != nil {
			log.WithFields(log.Fields{"book": bookName, "sheet": sheetName}).Debugf("Table detection failed: %s", err)
		}
		sheet.TableCandidates = tables

		for _, chart := range chartData[sheetName] {
			chart.Plot = chartPlot(f, sheetName, chart, names, opts)
			if chart.Plot != nil {
				plots++
			}
			sheet.Charts = append(sheet.Charts, chart)
		}

		if len(sheet.Charts) == 0 {
			for _, rng := range tables {
				if pd := tablePlot(f, sheetName, rng, opts); pd != nil {
					sheet.TablePlots = append(sheet.TablePlots, *pd)
					plots++
				}
			}
		}

		sheets[sheetName] = sheet
	}

	wb := &models.WorkbookData{
		BookName: bookName,
		Sheets:   sheets,
	}
	if plots == 0 {
		return wb, fmt.Errorf("%w in %s", ErrNoData, bookName)
	}
	return wb, nil
}

// chartPlot reads the series of chart into a scaled plot. Series that
// cannot be read are logged and skipped; nil is returned when none remain.
func chartPlot(f *excelize.File, sheetName string, chart models.Chart, names map[string]string, opts Options) *models.PlotData {
	pd := models.PlotData{
		PlotName: chart.Name,
		Settings: models.DefaultPlotSettings(),
	}
	pd.Settings.Title = chart.Title
	pd.Settings.XAxis = titledAxis(chart.XAxisTitle)
	pd.Settings.YAxis = titledAxis(chart.YAxisTitle)
	pd.Settings.SAxis = titledAxis(chart.SAxisTitle)
	pd.Settings.ShowSecondaryAxis = opts.ShouldShowSecondary(chart.HasSecondary())
	pd.Settings.IndependentTics = opts.ShouldUseIndependentTics()
	pd.Settings.Format = opts.LabelFormat

	for i, s := range chart.Series {
		line, err := parser.SeriesLine(f, s, names)
		if err != nil {
			serr := NewSeriesError(sheetName, chart.Name, seriesLabel(s, i), err)
			log.WithFields(log.Fields{"sheet": sheetName, "chart": chart.Name}).Warn(serr.Error())
			continue
		}
		pd.PlotLines = append(pd.PlotLines, line)
	}
	if len(pd.PlotLines) == 0 {
		return nil
	}

	return scalePlot(pd, opts, fixedRange(chart.YAxisRange, opts))
}

// fixedRange returns the value axis bounds a chart declares, or nil when it
// declares none, they are unusable or rescaling is forced.
func fixedRange(declared []float64, opts Options) []float64 {
	if opts.Force || len(declared) != 2 || !(declared[0] < declared[1]) {
		return nil
	}
	return declared
}

// tablePlot builds a scaled plot from a table candidate.
func tablePlot(f *excelize.File, sheetName, rng string, opts Options) *models.PlotData {
	lines, err := parser.TableLines(f, sheetName, rng, parser.DefaultTableParams())
	if err != nil {
		serr := NewSeriesError(sheetName, rng, "", err)
		log.WithFields(log.Fields{"sheet": sheetName, "table": rng}).Warn(serr.Error())
		return nil
	}
	if len(lines) == 0 {
		log.WithFields(log.Fields{"sheet": sheetName, "table": rng}).Debug("Table has no numeric columns")
		return nil
	}

	pd := models.PlotData{
		PlotName:  sheetName + "!" + rng,
		PlotLines: lines,
		Settings:  models.DefaultPlotSettings(),
	}
	pd.Settings.IndependentTics = opts.ShouldUseIndependentTics()
	pd.Settings.ShowSecondaryAxis = opts.ShouldShowSecondary(false)
	pd.Settings.Format = opts.LabelFormat

	return scalePlot(pd, opts, nil)
}

// scalePlot publishes pd through a Plot and returns the scaled snapshot.
// A fixed y range replaces the scaled y bounds and turns auto-scaling off
// for the result. Points are dropped from the result unless the mode asks
// for them, in which case the axes also carry their gridline labels.
func scalePlot(pd models.PlotData, opts Options, fixedY []float64) *models.PlotData {
	plot := NewPlot(pd)
	if opts.Force {
		plot.Rescale()
	} else {
		plot.Update(nil)
	}
	if fixedY != nil {
		plot.Pin(func(pd *models.PlotData) {
			pd.Settings.AutoScale = false
			pd.Settings.YAxis.Min, pd.Settings.YAxis.Max = fixedY[0], fixedY[1]
		})
	}

	scaled, _ := plot.Snapshot()
	if opts.ShouldIncludePoints() {
		for _, ap := range []*models.AxisParameters{scaled.Settings.XAxis, scaled.Settings.YAxis, scaled.Settings.SAxis} {
			if ap != nil {
				ap.Labels = scale.Labels(*ap, scaled.Settings.Format)
			}
		}
	} else {
		for i := range scaled.PlotLines {
			scaled.PlotLines[i].Values = nil
		}
	}

	log.WithFields(log.Fields{"plot": scaled.PlotName, "lines": len(scaled.PlotLines)}).Debug("Plot scaled")
	return &scaled
}

func titledAxis(title string) *models.AxisParameters {
	ap := models.DefaultAxisParameters()
	ap.Title = title
	return &ap
}

func seriesLabel(s models.ChartSeries, i int) string {
	switch {
	case s.Name != "":
		return s.Name
	case s.NameRange != "":
		return s.NameRange
	}
	return fmt.Sprintf("#%d", i+1)
}
