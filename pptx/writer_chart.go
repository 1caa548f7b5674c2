package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
)

func (w *PPTXWriter) writeChartPart(zw *zip.Writer, chart *ChartShape, chartIdx int) error {
	ct := chart.plotArea.chartType
	if ct == nil {
		return nil
	}

	var chartTypeXML string
	switch c := ct.(type) {
	case *Bar3DChart:
		chartTypeXML = w.writeBar3DChartXML(c)
	case *BarChart:
		chartTypeXML = w.writeBarChartXML(c)
	case *LineChart:
		chartTypeXML = w.writeLineChartXML(c)
	case *AreaChart:
		chartTypeXML = w.writeAreaChartXML(c)
	case *PieChart:
		chartTypeXML = w.writePieChartXML(c)
	case *DoughnutChart:
		chartTypeXML = w.writeDoughnutChartXML(c)
	case *ScatterChart:
		chartTypeXML = w.writeScatterChartXML(c)
	case *BubbleChart:
		chartTypeXML = w.writeBubbleChartXML(c)
	case *RadarChart:
		chartTypeXML = w.writeRadarChartXML(c)
	default:
		return fmt.Errorf("unsupported chart type %q", ct.GetChartTypeName())
	}

	titleXML := ""
	if chart.title.Visible && chart.title.Text != "" {
		titleXML = fmt.Sprintf(`    <c:title>
      <c:tx>
        <c:rich>
          <a:bodyPr/>
          <a:lstStyle/>
          <a:p>
            <a:r>
              <a:rPr lang="en-US" sz="%d" b="%s"/>
              <a:t>%s</a:t>
            </a:r>
          </a:p>
        </c:rich>
      </c:tx>
      <c:overlay val="0"/>
    </c:title>
    <c:autoTitleDeleted val="0"/>
`, chart.title.Font.sizeHundredths(), boolToXML(chart.title.Font.Bold), xmlEscape(chart.title.Text))
	} else {
		titleXML = "    <c:autoTitleDeleted val=\"1\"/>\n"
	}

	view3D := ""
	if _, ok := ct.(*Bar3DChart); ok {
		view3D = "    <c:view3D>\n      <c:rotX val=\"15\"/>\n      <c:rotY val=\"20\"/>\n      <c:rAngAx val=\"1\"/>\n    </c:view3D>\n"
	}

	legendXML := ""
	if chart.legend.Visible {
		legendXML = fmt.Sprintf(`    <c:legend>
      <c:legendPos val="%s"/>
      <c:overlay val="0"/>
    </c:legend>
`, chart.legend.Position)
	}

	axisXML := ""
	switch ct.(type) {
	case *PieChart, *DoughnutChart:
	case *ScatterChart, *BubbleChart:
		axisXML = w.writeValueAxisXML(chart.plotArea.axisX, 1, 2, "b") +
			w.writeValueAxisXML(chart.plotArea.axisY, 2, 1, "l")
	default:
		axisXML = w.writeCategoryAxisXML(chart.plotArea.axisX) +
			w.writeValueAxisXML(chart.plotArea.axisY, 2, 1, "l")
	}

	content := fmt.Sprintf(xmlDecl+`<c:chartSpace xmlns:c="%s" xmlns:a="%s" xmlns:r="%s">
  <c:roundedCorners val="0"/>
  <c:chart>
%s%s    <c:plotArea>
      <c:layout/>
%s%s    </c:plotArea>
%s    <c:plotVisOnly val="1"/>
    <c:dispBlanksAs val="gap"/>
  </c:chart>
</c:chartSpace>`,
		nsChart, nsDrawingML, nsOfficeDocRels,
		titleXML, view3D,
		chartTypeXML, axisXML,
		legendXML)

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/charts/chart%d.xml", chartIdx), content)
}

func boolToXML(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func axisOrientation(ax *ChartAxis) string {
	if ax.ReversedOrder {
		return "maxMin"
	}
	return "minMax"
}

func axisTitleXML(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf("        <c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang=\"en-US\"/><a:t>%s</a:t></a:r></a:p></c:rich></c:tx><c:overlay val=\"0\"/></c:title>\n",
		xmlEscape(title))
}

func (w *PPTXWriter) writeCategoryAxisXML(ax *ChartAxis) string {
	gridlines := ""
	if ax.MajorGridlines != nil {
		gridlines = writeGridlinesXML(ax.MajorGridlines)
	}
	return fmt.Sprintf(`      <c:catAx>
        <c:axId val="1"/>
        <c:scaling><c:orientation val="%s"/></c:scaling>
        <c:delete val="%s"/>
        <c:axPos val="b"/>
%s%s        <c:majorTickMark val="out"/>
        <c:minorTickMark val="none"/>
        <c:tickLblPos val="%s"/>
        <c:crossAx val="2"/>
        <c:crosses val="autoZero"/>
        <c:auto val="1"/>
        <c:lblAlgn val="ctr"/>
        <c:lblOffset val="100"/>
      </c:catAx>
`, axisOrientation(ax), boolToXML(!ax.Visible), gridlines, axisTitleXML(ax.Title), ax.TickLabelPos)
}

func (w *PPTXWriter) writeValueAxisXML(ax *ChartAxis, id, crossID int, pos string) string {
	var bounds strings.Builder
	gridlines := ""
	if ax.MajorGridlines != nil {
		gridlines = writeGridlinesXML(ax.MajorGridlines)
	}
	return fmt.Sprintf(`      <c:valAx>
        <c:axId val="%d"/>
        <c:scaling><c:orientation val="%s"/>%s</c:scaling>
        <c:delete val="%s"/>
        <c:axPos val="%s"/>
%s%s        <c:numFmt formatCode="General" sourceLinked="1"/>
        <c:majorTickMark val="out"/>
        <c:minorTickMark val="none"/>
        <c:tickLblPos val="%s"/>
        <c:crossAx val="%d"/>
        <c:crosses val="autoZero"/>
        <c:crossBetween val="between"/>
      </c:valAx>
`, id, axisOrientation(ax), bounds.String(), boolToXML(!ax.Visible), pos,
		gridlines, axisTitleXML(ax.Title), ax.TickLabelPos, crossID)
}

func writeGridlinesXML(gl *Gridlines) string {
	return fmt.Sprintf(`        <c:majorGridlines>
          <c:spPr>
            <a:ln w="%d">
              <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
            </a:ln>
          </c:spPr>
        </c:majorGridlines>
`, gl.Width, colorRGB(gl.Color))
}

// seriesColumn is the worksheet column a series is cached from. Column A
// holds categories, so series start at B.
func seriesColumn(idx int) string {
	col := ""
	for n := idx + 2; n > 0; n = (n - 1) / 26 {
		col = string(rune('A'+(n-1)%26)) + col
	}
	return col
}

// seriesKind selects the optional per-series children allowed by each chart type.
type seriesKind int

const (
	seriesCategory seriesKind = iota
	seriesMarker
	seriesRadar
	seriesPlain
	seriesXY
	seriesBubble
)

func (w *PPTXWriter) writeSeriesXML(series []*ChartSeries, kind seriesKind) string {
	var sb strings.Builder
	for idx, s := range series {
		col := seriesColumn(idx)
		fmt.Fprintf(&sb, `        <c:ser>
          <c:idx val="%d"/>
          <c:order val="%d"/>
          <c:tx><c:strRef><c:f>Sheet1!$%s$1</c:f><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>%s</c:v></c:pt></c:strCache></c:strRef></c:tx>
`, idx, idx, col, xmlEscape(s.Title))

		if s.FillColor.ARGB != "" {
			if kind == seriesMarker || kind == seriesRadar || kind == seriesXY {
				fmt.Fprintf(&sb, "          <c:spPr><a:ln w=\"28575\"><a:solidFill>%s</a:solidFill></a:ln></c:spPr>\n", srgbXML(s.FillColor))
			} else {
				fmt.Fprintf(&sb, "          <c:spPr><a:solidFill>%s</a:solidFill></c:spPr>\n", srgbXML(s.FillColor))
			}
		}
		if kind == seriesBubble || kind == seriesCategory {
			sb.WriteString("          <c:invertIfNegative val=\"0\"/>\n")
		}
		if (kind == seriesMarker || kind == seriesRadar || kind == seriesXY) && s.Marker != nil {
			fmt.Fprintf(&sb, "          <c:marker><c:symbol val=\"%s\"/>", s.Marker.Symbol)
			if s.Marker.Symbol != MarkerNone && s.Marker.Size > 0 {
				fmt.Fprintf(&sb, "<c:size val=\"%d\"/>", s.Marker.Size)
			}
			sb.WriteString("</c:marker>\n")
		}
		for i, c := range s.PointColors {
			fmt.Fprintf(&sb, "          <c:dPt><c:idx val=\"%d\"/><c:spPr><a:solidFill>%s</a:solidFill></c:spPr></c:dPt>\n", i, srgbXML(c))
		}
		if s.ShowValue {
			sb.WriteString("          <c:dLbls>\n" +
				"            <c:showLegendKey val=\"0\"/>\n" +
				"            <c:showVal val=\"1\"/>\n" +
				"            <c:showCatName val=\"0\"/>\n" +
				"            <c:showSerName val=\"0\"/>\n" +
				"            <c:showPercent val=\"0\"/>\n" +
				"            <c:showBubbleSize val=\"0\"/>\n" +
				"          </c:dLbls>\n")
		}

		switch kind {
		case seriesXY, seriesBubble:
			writeNumRef(&sb, "c:xVal", "A", s.XValues)
			writeNumRef(&sb, "c:yVal", col, s.Values)
			if kind == seriesBubble {
				writeNumRef(&sb, "c:bubbleSize", seriesColumn(idx+1), s.Sizes)
				sb.WriteString("          <c:bubble3D val=\"0\"/>\n")
			} else {
				sb.WriteString("          <c:smooth val=\"0\"/>\n")
			}
		default:
			if len(s.Categories) > 0 {
				fmt.Fprintf(&sb, "          <c:cat>\n            <c:strRef><c:f>Sheet1!$A$2:$A$%d</c:f><c:strCache>\n", len(s.Categories)+1)
				fmt.Fprintf(&sb, "              <c:ptCount val=\"%d\"/>\n", len(s.Categories))
				for i, cat := range s.Categories {
					fmt.Fprintf(&sb, "              <c:pt idx=\"%d\"><c:v>%s</c:v></c:pt>\n", i, xmlEscape(cat))
				}
				sb.WriteString("            </c:strCache></c:strRef>\n          </c:cat>\n")
			}
			writeNumRef(&sb, "c:val", col, s.Values)
			if kind == seriesMarker {
				sb.WriteString("          <c:smooth val=\"0\"/>\n")
			}
		}

		sb.WriteString("        </c:ser>\n")
	}
	return sb.String()
}

func writeNumRef(sb *strings.Builder, tag, col string, values []float64) {
	fmt.Fprintf(sb, "          <%s>\n            <c:numRef><c:f>Sheet1!$%s$2:$%s$%d</c:f><c:numCache>\n", tag, col, col, len(values)+1)
	fmt.Fprintf(sb, "              <c:formatCode>General</c:formatCode>\n              <c:ptCount val=\"%d\"/>\n", len(values))
	for i, v := range values {
		fmt.Fprintf(sb, "              <c:pt idx=\"%d\"><c:v>%g</c:v></c:pt>\n", i, v)
	}
	fmt.Fprintf(sb, "            </c:numCache></c:numRef>\n          </%s>\n", tag)
}

func (w *PPTXWriter) writeBarChartXML(c *BarChart) string {
	overlap := ""
	if c.BarGrouping == BarGroupingStacked {
		overlap = "        <c:overlap val=\"100\"/>\n"
	}
	return fmt.Sprintf(`      <c:barChart>
        <c:barDir val="%s"/>
        <c:grouping val="%s"/>
        <c:varyColors val="0"/>
%s        <c:gapWidth val="%d"/>
%s        <c:axId val="1"/>
        <c:axId val="2"/>
      </c:barChart>
`, c.BarDirection, c.BarGrouping, w.writeSeriesXML(c.Series, seriesCategory),
		c.GapWidthPercent, overlap)
}

func (w *PPTXWriter) writeBar3DChartXML(c *Bar3DChart) string {
	return fmt.Sprintf(`      <c:bar3DChart>
        <c:barDir val="%s"/>
        <c:grouping val="%s"/>
        <c:varyColors val="0"/>
%s        <c:gapWidth val="%d"/>
        <c:shape val="box"/>
        <c:axId val="1"/>
        <c:axId val="2"/>
      </c:bar3DChart>
`, c.BarDirection, c.BarGrouping, w.writeSeriesXML(c.Series, seriesCategory),
		c.GapWidthPercent)
}

func (w *PPTXWriter) writeLineChartXML(c *LineChart) string {
	seriesXML := w.writeSeriesXML(c.Series, seriesMarker)
	if c.IsSmooth {
		seriesXML = strings.ReplaceAll(seriesXML, "<c:smooth val=\"0\"/>", "<c:smooth val=\"1\"/>")
	}
	return fmt.Sprintf(`      <c:lineChart>
        <c:grouping val="standard"/>
        <c:varyColors val="0"/>
%s        <c:marker val="1"/>
        <c:axId val="1"/>
        <c:axId val="2"/>
      </c:lineChart>
`, seriesXML)
}

func (w *PPTXWriter) writeAreaChartXML(c *AreaChart) string {
	return fmt.Sprintf(`      <c:areaChart>
        <c:grouping val="standard"/>
        <c:varyColors val="0"/>
%s        <c:axId val="1"/>
        <c:axId val="2"/>
      </c:areaChart>
`, w.writeSeriesXML(c.Series, seriesPlain))
}

func (w *PPTXWriter) writePieChartXML(c *PieChart) string {
	return fmt.Sprintf(`      <c:pieChart>
        <c:varyColors val="1"/>
%s        <c:firstSliceAng val="0"/>
      </c:pieChart>
`, w.writeSeriesXML(c.Series, seriesPlain))
}

func (w *PPTXWriter) writeDoughnutChartXML(c *DoughnutChart) string {
	return fmt.Sprintf(`      <c:doughnutChart>
        <c:varyColors val="1"/>
%s        <c:firstSliceAng val="0"/>
        <c:holeSize val="%d"/>
      </c:doughnutChart>
`, w.writeSeriesXML(c.Series, seriesPlain), c.HoleSize)
}

func (w *PPTXWriter) writeScatterChartXML(c *ScatterChart) string {
	seriesXML := w.writeSeriesXML(c.Series, seriesXY)
	style := "lineMarker"
	if c.IsSmooth {
		style = "smoothMarker"
		seriesXML = strings.ReplaceAll(seriesXML, "<c:smooth val=\"0\"/>", "<c:smooth val=\"1\"/>")
	}
	return fmt.Sprintf(`      <c:scatterChart>
        <c:scatterStyle val="%s"/>
        <c:varyColors val="0"/>
%s        <c:axId val="1"/>
        <c:axId val="2"/>
      </c:scatterChart>
`, style, seriesXML)
}

func (w *PPTXWriter) writeBubbleChartXML(c *BubbleChart) string {
	return fmt.Sprintf(`      <c:bubbleChart>
        <c:varyColors val="0"/>
%s        <c:bubbleScale val="%d"/>
        <c:showNegBubbles val="0"/>
        <c:axId val="1"/>
        <c:axId val="2"/>
      </c:bubbleChart>
`, w.writeSeriesXML(c.Series, seriesBubble), c.BubbleScale)
}

func (w *PPTXWriter) writeRadarChartXML(c *RadarChart) string {
	style := "marker"
	if c.Filled {
		style = "filled"
	}
	return fmt.Sprintf(`      <c:radarChart>
        <c:radarStyle val="%s"/>
        <c:varyColors val="0"/>
%s        <c:axId val="1"/>
        <c:axId val="2"/>
      </c:radarChart>
`, style, w.writeSeriesXML(c.Series, seriesRadar))
}
