package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const comboChartXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <c:chart>
    <c:title><c:tx><c:rich><a:p><a:r><a:t>Power </a:t></a:r><a:r><a:t>Supply</a:t></a:r></a:p></c:rich></c:tx></c:title>
    <c:plotArea>
      <c:scatterChart>
        <c:ser>
          <c:tx><c:strRef><c:f>Data!$B$1</c:f><c:strCache><c:pt idx="0"><c:v>Volts</c:v></c:pt></c:strCache></c:strRef></c:tx>
          <c:xVal><c:numRef><c:f>Data!$A$2:$A$6</c:f></c:numRef></c:xVal>
          <c:yVal><c:numRef><c:f>Data!$B$2:$B$6</c:f></c:numRef></c:yVal>
        </c:ser>
        <c:axId val="10"/>
        <c:axId val="11"/>
      </c:scatterChart>
      <c:scatterChart>
        <c:ser>
          <c:tx><c:v>Amps</c:v></c:tx>
          <c:xVal><c:numRef><c:f>Data!$A$2:$A$6</c:f></c:numRef></c:xVal>
          <c:yVal><c:numRef><c:f>Data!$C$2:$C$6</c:f></c:numRef></c:yVal>
        </c:ser>
        <c:axId val="20"/>
        <c:axId val="21"/>
      </c:scatterChart>
      <c:valAx>
        <c:axId val="10"/>
        <c:scaling><c:orientation val="minMax"/></c:scaling>
        <c:delete val="0"/>
        <c:axPos val="b"/>
        <c:title><c:tx><c:rich><a:p><a:r><a:t>Time</a:t></a:r></a:p></c:rich></c:tx></c:title>
      </c:valAx>
      <c:valAx>
        <c:axId val="11"/>
        <c:scaling><c:orientation val="minMax"/><c:max val="12"/><c:min val="0"/></c:scaling>
        <c:delete val="0"/>
        <c:axPos val="l"/>
        <c:title><c:tx><c:rich><a:p><a:r><a:t>Voltage</a:t></a:r></a:p></c:rich></c:tx></c:title>
      </c:valAx>
      <c:valAx>
        <c:axId val="20"/>
        <c:scaling><c:orientation val="minMax"/></c:scaling>
        <c:delete val="1"/>
        <c:axPos val="b"/>
      </c:valAx>
      <c:valAx>
        <c:axId val="21"/>
        <c:scaling><c:orientation val="minMax"/></c:scaling>
        <c:delete val="0"/>
        <c:axPos val="r"/>
        <c:title><c:tx><c:rich><a:p><a:r><a:t>Current</a:t></a:r></a:p></c:rich></c:tx></c:title>
      </c:valAx>
    </c:plotArea>
  </c:chart>
</c:chartSpace>`

func TestParseChartXMLSecondaryGroup(t *testing.T) {
	chart := parseChartXML([]byte(comboChartXML), "Chart 1", 10, 20, 300, 200)
	require.NotNil(t, chart)

	assert.Equal(t, "XYScatter", chart.ChartType)
	assert.Equal(t, "Power Supply", chart.Title)
	assert.Equal(t, "Time", chart.XAxisTitle)
	assert.Equal(t, "Voltage", chart.YAxisTitle)
	assert.Equal(t, "Current", chart.SAxisTitle)
	assert.Equal(t, []float64{0, 12}, chart.YAxisRange)
	assert.Equal(t, 10, chart.L)
	assert.Equal(t, 20, chart.T)
	require.NotNil(t, chart.W)
	assert.Equal(t, 300, *chart.W)

	require.Len(t, chart.Series, 2)
	volts, amps := chart.Series[0], chart.Series[1]

	assert.Equal(t, "Volts", volts.Name)
	assert.Equal(t, "Data!$B$1", volts.NameRange)
	assert.Equal(t, "Data!$A$2:$A$6", volts.XRange)
	assert.Equal(t, "Data!$B$2:$B$6", volts.YRange)
	assert.False(t, volts.Secondary)

	assert.Equal(t, "Amps", amps.Name)
	assert.Empty(t, amps.NameRange)
	assert.Equal(t, "Data!$C$2:$C$6", amps.YRange)
	assert.True(t, amps.Secondary)
	assert.True(t, chart.HasSecondary())
}

func TestParseChartXMLSingleGroup(t *testing.T) {
	data := `<c:chartSpace xmlns:c="c"><c:chart><c:plotArea>
		<c:lineChart>
			<c:ser><c:cat><c:strRef><c:f>S!$A$1:$A$3</c:f></c:strRef></c:cat><c:val><c:numRef><c:f>S!$B$1:$B$3</c:f></c:numRef></c:val></c:ser>
			<c:ser><c:val><c:numRef><c:f>S!$C$1:$C$3</c:f></c:numRef></c:val></c:ser>
			<c:axId val="1"/><c:axId val="2"/>
		</c:lineChart>
		<c:catAx><c:axId val="1"/><c:title><c:tx><c:rich><c:p><c:r><c:t>Day</c:t></c:r></c:p></c:rich></c:tx></c:title></c:catAx>
		<c:valAx><c:axId val="2"/></c:valAx>
	</c:plotArea></c:chart></c:chartSpace>`

	chart := parseChartXML([]byte(data), "c", 0, 0, 0, 0)
	assert.Equal(t, "Line", chart.ChartType)
	assert.Equal(t, "Day", chart.XAxisTitle)
	assert.Empty(t, chart.SAxisTitle)
	assert.Nil(t, chart.YAxisRange)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "S!$A$1:$A$3", chart.Series[0].XRange)
	assert.Empty(t, chart.Series[1].XRange)
	assert.False(t, chart.HasSecondary())
}

func TestParseChartXMLUnknown(t *testing.T) {
	chart := parseChartXML([]byte(`<c:chartSpace xmlns:c="c"><c:chart/></c:chartSpace>`), "c", 0, 0, 0, 0)
	assert.Equal(t, "unknown", chart.ChartType)
	assert.Empty(t, chart.Series)
}

func TestParseDrawingForCharts(t *testing.T) {
	data := `<xdr:wsDr xmlns:xdr="x" xmlns:a="a" xmlns:c="c" xmlns:r="r">
		<xdr:twoCellAnchor>
			<xdr:graphicFrame>
				<xdr:nvGraphicFramePr><xdr:cNvPr id="2" name="Chart 1"/></xdr:nvGraphicFramePr>
				<xdr:xfrm><a:off x="95250" y="190500"/><a:ext cx="952500" cy="476250"/></xdr:xfrm>
				<a:graphic><a:graphicData><c:chart r:id="rId1"/></a:graphicData></a:graphic>
			</xdr:graphicFrame>
		</xdr:twoCellAnchor>
		<xdr:twoCellAnchor><xdr:sp><xdr:nvSpPr><xdr:cNvPr id="3" name="Box"/></xdr:nvSpPr></xdr:sp></xdr:twoCellAnchor>
		<xdr:oneCellAnchor>
			<xdr:graphicFrame>
				<xdr:nvGraphicFramePr><xdr:cNvPr id="4" name="Chart 2"/></xdr:nvGraphicFramePr>
				<a:graphic><a:graphicData><c:chart r:id="rId2"/></a:graphicData></a:graphic>
			</xdr:graphicFrame>
		</xdr:oneCellAnchor>
	</xdr:wsDr>`

	positions := parseDrawingForCharts([]byte(data))
	require.Len(t, positions, 2)
	assert.Equal(t, chartPosition{rID: "rId1", name: "Chart 1", left: 10, top: 20, width: 100, height: 50}, positions[0])
	assert.Equal(t, "rId2", positions[1].rID)
	assert.Equal(t, "Chart 2", positions[1].name)
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		baseDir  string
		expected string
	}{
		{"../drawings/drawing1.xml", "xl/drawings", "xl/drawings/drawing1.xml"},
		{"chart2.xml", "xl/charts", "xl/charts/chart2.xml"},
		{"/xl/drawings/drawing2.xml", "xl/drawings", "xl/drawings/drawing2.xml"},
		{"worksheets/sheet1.xml", "xl", "xl/worksheets/sheet1.xml"},
	}

	for _, tt := range tests {
		result := resolveRelativePath(tt.target, tt.baseDir)
		if result != tt.expected {
			t.Errorf("resolveRelativePath(%q, %q) = %q, expected %q", tt.target, tt.baseDir, result, tt.expected)
		}
	}
}

func TestFindDrawingRelationshipSkipsVML(t *testing.T) {
	data := `<Relationships>
		<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/vmlDrawing" Target="../drawings/vmlDrawing1.vml"/>
		<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing" Target="../drawings/drawing1.xml"/>
	</Relationships>`

	assert.Equal(t, "../drawings/drawing1.xml", findDrawingRelationship([]byte(data)))
	assert.Empty(t, findDrawingRelationship([]byte(`<Relationships/>`)))
}

// writeComboWorkbook saves a workbook whose sheet "Data" holds a line chart
// with one primary and one secondary series.
func writeComboWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Data"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	rows := [][]interface{}{
		{"t", "Volts", "Amps"},
		{1, 0.5, 120},
		{2, 3.2, 80},
		{3, 7.9, 45},
		{4, 9.1, 20},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	primary := &excelize.Chart{
		Type:  excelize.Line,
		Title: []excelize.RichTextRun{{Text: "Bench"}},
		Series: []excelize.ChartSeries{{
			Name:       "Data!$B$1",
			Categories: "Data!$A$2:$A$5",
			Values:     "Data!$B$2:$B$5",
		}},
		YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Voltage"}}},
	}
	secondary := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       "Data!$C$1",
			Categories: "Data!$A$2:$A$5",
			Values:     "Data!$C$2:$C$5",
		}},
		YAxis: excelize.ChartAxis{Secondary: true, Title: []excelize.RichTextRun{{Text: "Current"}}},
	}
	require.NoError(t, f.AddChart(sheet, "E2", primary, secondary))

	path := filepath.Join(t.TempDir(), "combo.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtractCharts(t *testing.T) {
	path := writeComboWorkbook(t)

	charts, err := ExtractCharts(path, "standard")
	require.NoError(t, err)
	require.Len(t, charts["Data"], 1)

	chart := charts["Data"][0]
	assert.Equal(t, "Line", chart.ChartType)
	assert.Equal(t, "Bench", chart.Title)
	assert.Equal(t, "Voltage", chart.YAxisTitle)
	assert.Equal(t, "Current", chart.SAxisTitle)
	assert.Nil(t, chart.W)
	assert.Nil(t, chart.H)

	require.Len(t, chart.Series, 2)
	assert.Equal(t, "Data!$B$1", chart.Series[0].NameRange)
	assert.Equal(t, "Data!$A$2:$A$5", chart.Series[0].XRange)
	assert.False(t, chart.Series[0].Secondary)
	assert.Equal(t, "Data!$C$2:$C$5", chart.Series[1].YRange)
	assert.True(t, chart.Series[1].Secondary)

	verbose, err := ExtractCharts(path, "verbose")
	require.NoError(t, err)
	assert.NotNil(t, verbose["Data"][0].W)

	light, err := ExtractCharts(path, "light")
	require.NoError(t, err)
	assert.Empty(t, light)
}

func TestExtractChartsMissingFile(t *testing.T) {
	_, err := ExtractCharts(filepath.Join(t.TempDir(), "missing.xlsx"), "standard")
	assert.Error(t, err)
}
