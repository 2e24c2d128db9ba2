package parser

import (
	"archive/zip"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// chartInfo holds chart metadata from drawing.xml.
type chartInfo struct {
	name      string
	chartPath string
	left      int
	top       int
	width     int
	height    int
}

// chartGroup is one chart type element of a plot area with its series and
// the ids of the axes it is plotted against.
type chartGroup struct {
	chartType string
	series    []models.ChartSeries
	axisIDs   []string
}

// chartAxis is a catAx, valAx, dateAx or serAx element.
type chartAxis struct {
	kind    string
	id      string
	pos     string
	deleted bool
	title   string
	scaling []float64
}

// horizontal reports whether the axis runs along the bottom or top edge.
func (a chartAxis) horizontal() bool {
	switch a.pos {
	case "b", "t":
		return true
	case "l", "r":
		return false
	}
	return a.kind != "valAx"
}

// ExtractCharts extracts charts from an xlsx file.
func ExtractCharts(xlsxPath string, mode string) (map[string][]models.Chart, error) {
	if mode == "light" {
		return make(map[string][]models.Chart), nil
	}

	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := make(map[string][]models.Chart)
	for sheetName, chartInfos := range getSheetChartMap(&r.Reader) {
		var charts []models.Chart
		for _, ci := range chartInfos {
			chart, err := parseChartFile(&r.Reader, ci, mode)
			if err != nil {
				continue
			}
			if chart != nil {
				charts = append(charts, *chart)
			}
		}
		result[sheetName] = charts
	}

	return result, nil
}

// getSheetChartMap returns a mapping of sheet names to their chart info.
func getSheetChartMap(r *zip.Reader) map[string][]chartInfo {
	result := make(map[string][]chartInfo)
	for sheetName, drawingPath := range getSheetDrawingMap(r) {
		if chartInfos := getChartInfosFromDrawing(r, drawingPath); len(chartInfos) > 0 {
			result[sheetName] = chartInfos
		}
	}
	return result
}

// getChartInfosFromDrawing extracts chart info from a drawing XML file in
// document order.
func getChartInfosFromDrawing(r *zip.Reader, drawingPath string) []chartInfo {
	var result []chartInfo

	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return result
	}

	chartPositions := parseDrawingForCharts(drawingXML)
	if len(chartPositions) == 0 {
		return result
	}

	relsPath := strings.Replace(drawingPath, "drawings/", "drawings/_rels/", 1)
	relsPath = strings.Replace(relsPath, ".xml", ".xml.rels", 1)

	relsXML, err := readZipFile(r, relsPath)
	if err != nil || relsXML == nil {
		return result
	}

	chartPaths := parseRelationships(relsXML, "chart")

	for _, pos := range chartPositions {
		if chartPath, ok := chartPaths[pos.rID]; ok {
			result = append(result, chartInfo{
				name:      pos.name,
				chartPath: resolveRelativePath(chartPath, "xl/charts"),
				left:      pos.left,
				top:       pos.top,
				width:     pos.width,
				height:    pos.height,
			})
		}
	}

	return result
}

// chartPosition holds position info from drawing.xml.
type chartPosition struct {
	rID    string
	name   string
	left   int
	top    int
	width  int
	height int
}

// parseDrawingForCharts parses drawing XML to find chart positions.
func parseDrawingForCharts(data []byte) []chartPosition {
	var result []chartPosition
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
				if pos := parseGraphicFrame(decoder); pos.rID != "" {
					result = append(result, pos)
				}
			}
		}
	}

	return result
}

// parseGraphicFrame parses an anchor to find a graphicFrame with a chart.
func parseGraphicFrame(decoder *xml.Decoder) chartPosition {
	var pos chartPosition
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "graphicFrame" {
				pos = parseGraphicFrameContent(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return pos
}

// parseGraphicFrameContent parses graphicFrame content.
func parseGraphicFrameContent(decoder *xml.Decoder) chartPosition {
	var pos chartPosition
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				pos.name, _ = attrValue(t, "name")
			case "xfrm":
				pos.left, pos.top, pos.width, pos.height = parseXfrm(decoder)
				depth--
			case "chart":
				pos.rID, _ = attrValue(t, "id")
			}
		case xml.EndElement:
			depth--
		}
	}

	return pos
}

// parseChartFile parses a chart XML file.
func parseChartFile(r *zip.Reader, ci chartInfo, mode string) (*models.Chart, error) {
	chartXML, err := readZipFile(r, ci.chartPath)
	if err != nil || chartXML == nil {
		return nil, err
	}

	chart := parseChartXML(chartXML, ci.name, ci.left, ci.top, ci.width, ci.height)

	// Apply mode filtering
	if mode != "verbose" {
		chart.W = nil
		chart.H = nil
	}

	return chart, nil
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte, name string, left, top, width, height int) *models.Chart {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	w := width
	h := height
	chart := &models.Chart{
		Name: name,
		W:    &w,
		H:    &h,
		L:    left,
		T:    top,
	}

	var groups []chartGroup
	var axes []chartAxis

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			chart.Title, groups, axes = parseChartElement(decoder)
		}
	}

	assignChartGroups(chart, groups, axes)
	if chart.ChartType == "" {
		chart.ChartType = "unknown"
	}

	return chart
}

// assignChartGroups flattens the chart groups into the chart's series and
// resolves the axis titles. A group whose axis ids differ from those of the
// first group is plotted against the secondary value axis.
func assignChartGroups(chart *models.Chart, groups []chartGroup, axes []chartAxis) {
	if len(groups) == 0 {
		return
	}
	chart.ChartType = groups[0].chartType

	primary := groups[0].axisIDs
	var secondary []string
	for _, g := range groups {
		isSecondary := !sameIDs(g.axisIDs, primary)
		if isSecondary && secondary == nil {
			secondary = g.axisIDs
		}
		for _, s := range g.series {
			s.Secondary = isSecondary
			chart.Series = append(chart.Series, s)
		}
	}

	for _, ax := range axes {
		switch {
		case containsID(primary, ax.id):
			if ax.horizontal() {
				chart.XAxisTitle = ax.title
			} else {
				chart.YAxisTitle = ax.title
				chart.YAxisRange = ax.scaling
			}
		case containsID(secondary, ax.id):
			if !ax.horizontal() && !ax.deleted {
				chart.SAxisTitle = ax.title
			}
		}
	}
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !containsID(b, id) {
			return false
		}
	}
	return true
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// parseChartElement parses c:chart element.
func parseChartElement(decoder *xml.Decoder) (title string, groups []chartGroup, axes []chartAxis) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				title = parseChartTitle(decoder)
				depth--
			case "plotArea":
				groups, axes = parsePlotArea(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseChartTitle parses a title element, joining its text runs.
func parseChartTitle(decoder *xml.Decoder) string {
	var title strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					title.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(title.String())
}

// parsePlotArea parses plot area element.
func parsePlotArea(decoder *xml.Decoder) (groups []chartGroup, axes []chartAxis) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if ct, ok := ChartTypeMap[t.Name.Local]; ok {
				g := parseChartGroup(decoder)
				g.chartType = ct
				groups = append(groups, g)
				depth--
				continue
			}
			switch t.Name.Local {
			case "catAx", "valAx", "dateAx", "serAx":
				ax := parseAxis(decoder)
				ax.kind = t.Name.Local
				axes = append(axes, ax)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseChartGroup parses the series and axis ids within a chart type.
func parseChartGroup(decoder *xml.Decoder) chartGroup {
	var g chartGroup
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "ser":
				g.series = append(g.series, parseSingleSeries(decoder))
				depth--
			case "axId":
				if id, ok := attrValue(t, "val"); ok {
					g.axisIDs = append(g.axisIDs, id)
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return g
}

// parseSingleSeries parses a single series element. Scatter and bubble
// series carry xVal/yVal where other charts use cat/val.
func parseSingleSeries(decoder *xml.Decoder) models.ChartSeries {
	var s models.ChartSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				name, nameRange := parseSeriesName(decoder)
				if s.Name == "" && s.NameRange == "" {
					s.Name, s.NameRange = name, nameRange
				}
				depth--
			case "cat", "xVal":
				s.XRange = parseSeriesRange(decoder)
				depth--
			case "val", "yVal":
				s.YRange = parseSeriesRange(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return s
}

// parseSeriesName parses series name from tx element.
func parseSeriesName(decoder *xml.Decoder) (name, nameRange string) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					nameRange = strings.TrimSpace(txt)
				}
				depth--
			case "v":
				if txt, err := readElementText(decoder); err == nil {
					name = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseSeriesRange parses range reference from a cat, val, xVal or yVal
// element.
func parseSeriesRange(decoder *xml.Decoder) string {
	var ref string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "f" && ref == "" {
				if txt, err := readElementText(decoder); err == nil {
					ref = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return ref
}

// parseAxis parses an axis element.
func parseAxis(decoder *xml.Decoder) chartAxis {
	var ax chartAxis
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "axId":
				ax.id, _ = attrValue(t, "val")
			case "axPos":
				ax.pos, _ = attrValue(t, "val")
			case "delete":
				v, _ := attrValue(t, "val")
				ax.deleted = v == "1" || v == "true"
			case "title":
				ax.title = parseChartTitle(decoder)
				depth--
			case "scaling":
				ax.scaling = parseAxisScaling(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return ax
}

// parseAxisScaling parses axis scaling element.
func parseAxisScaling(decoder *xml.Decoder) []float64 {
	var min, max *float64
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "min":
				min = floatAttr(t, "val")
			case "max":
				max = floatAttr(t, "val")
			}
		case xml.EndElement:
			depth--
		}
	}

	if min != nil && max != nil {
		return []float64{*min, *max}
	}
	return nil
}

func floatAttr(se xml.StartElement, name string) *float64 {
	if v, ok := attrValue(se, name); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}
