package render

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// InvalidChartLabel is drawn when a chart has nothing to plot.
const InvalidChartLabel = "Chart: invalid data"

// chartPoint is a data point given as a bare number or as {x, y, r}.
type chartPoint struct {
	X, Y, R deck.Number
}

func (p *chartPoint) UnmarshalJSON(data []byte) error {
	*p = chartPoint{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			X     deck.Number `json:"x"`
			Y     deck.Number `json:"y"`
			R     deck.Number `json:"r"`
			Value deck.Number `json:"value"`
		}
		_ = json.Unmarshal(data, &obj)
		p.X, p.Y, p.R = obj.X, obj.Y, obj.R
		if !p.Y.Valid() {
			p.Y = obj.Value
		}
		return nil
	}
	return p.Y.UnmarshalJSON(data)
}

type chartDataset struct {
	Label           deck.Text    `json:"label"`
	Data            []chartPoint `json:"data"`
	BackgroundColor deck.Texts   `json:"backgroundColor"`
	BorderColor     deck.Texts   `json:"borderColor"`
	Color           deck.Text    `json:"color"`
}

type chartData struct {
	Labels   deck.Texts     `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartPayload struct {
	chartData
	Type       deck.Text  `json:"type"`
	ChartType  deck.Text  `json:"chartType"`
	Title      deck.Text  `json:"title"`
	Data       *chartData `json:"data"`
	ShowLegend *deck.Bool `json:"showLegend"`
	Stacked    deck.Bool  `json:"stacked"`
	Horizontal deck.Bool  `json:"horizontal"`
	XAxisLabel deck.Text  `json:"xAxisLabel"`
	YAxisLabel deck.Text  `json:"yAxisLabel"`
}

// data returns the labels and datasets, which may sit at the top level or
// under "data".
func (p chartPayload) data() chartData {
	if p.Data != nil && len(p.Data.Datasets) > 0 {
		return *p.Data
	}
	return p.chartData
}

// ChartKind names the native chart a chart component maps to.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartBar3D    ChartKind = "bar3d"
	ChartLine     ChartKind = "line"
	ChartArea     ChartKind = "area"
	ChartPie      ChartKind = "pie"
	ChartDoughnut ChartKind = "doughnut"
	ChartRadar    ChartKind = "radar"
	ChartScatter  ChartKind = "scatter"
	ChartBubble   ChartKind = "bubble"
)

var chartKinds = map[string]ChartKind{
	"bar":           ChartBar,
	"column":        ChartBar,
	"horizontalbar": ChartBar,
	"bar3d":         ChartBar3D,
	"line":          ChartLine,
	"area":          ChartArea,
	"pie":           ChartPie,
	"polararea":     ChartPie,
	"doughnut":      ChartDoughnut,
	"donut":         ChartDoughnut,
	"radar":         ChartRadar,
	"scatter":       ChartScatter,
	"bubble":        ChartBubble,
}

// LookupChartKind maps a chart type name; unknown names chart as bars.
func LookupChartKind(name string) ChartKind {
	if k, ok := chartKinds[normalizeTag(name)]; ok {
		return k
	}
	return ChartBar
}

type seriesAdder interface {
	pptx.ChartType
	AddSeries(s *pptx.ChartSeries)
}

func newChartType(kind ChartKind, p chartPayload, name string) seriesAdder {
	switch kind {
	case ChartBar3D:
		return pptx.NewBar3DChart()
	case ChartLine:
		return pptx.NewLineChart()
	case ChartArea:
		return pptx.NewAreaChart()
	case ChartPie:
		return pptx.NewPieChart()
	case ChartDoughnut:
		return pptx.NewDoughnutChart()
	case ChartRadar:
		return pptx.NewRadarChart()
	case ChartScatter:
		return pptx.NewScatterChart()
	case ChartBubble:
		return pptx.NewBubbleChart()
	}
	bar := pptx.NewBarChart()
	if p.Horizontal || normalizeTag(name) == "horizontalbar" {
		bar.BarDirection = pptx.BarDirectionHorizontal
	}
	if p.Stacked {
		bar.BarGrouping = pptx.BarGroupingStacked
	}
	return bar
}

// palette returns the theme series colors in cycling order.
func (ctx *Context) palette() []string {
	return []string{ctx.primary(), ctx.secondary(), ctx.accent(), ctx.textColor()}
}

func seriesColor(ds chartDataset, fallback string) pptx.Color {
	var first string
	if len(ds.BackgroundColor) > 0 {
		first = ds.BackgroundColor[0].String()
	}
	var border string
	if len(ds.BorderColor) > 0 {
		border = ds.BorderColor[0].String()
	}
	return resolve.Color(resolve.Cascade(ds.Color.String(), first, border), fallback, defaultPrimary)
}

// Chart renders a native chart. A chart without any plottable dataset draws
// an "invalid data" placeholder.
func Chart(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p chartPayload
	decodePayload(c, &p)
	data := p.data()
	box := resolve.BoxFromLayout(c.Layout)

	datasets := make([]chartDataset, 0, len(data.Datasets))
	longest := 0
	for _, ds := range data.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		datasets = append(datasets, ds)
		longest = max(longest, len(ds.Data))
	}
	if len(datasets) == 0 {
		Placeholder(ctx, s, box, InvalidChartLabel)
		return nil
	}

	typeName := resolve.Cascade(p.ChartType.String(), p.Type.String())
	kind := LookupChartKind(typeName)
	chartType := newChartType(kind, p, typeName)

	categories := make([]string, longest)
	for i := range categories {
		if i < len(data.Labels) && !data.Labels[i].IsBlank() {
			categories[i] = data.Labels[i].Trimmed()
		} else {
			categories[i] = strconv.Itoa(i + 1)
		}
	}

	palette := ctx.palette()
	for i, ds := range datasets {
		title := resolve.Cascade(ds.Label.String(), "Series "+strconv.Itoa(i+1))
		color := seriesColor(ds, palette[i%len(palette)])

		var series *pptx.ChartSeries
		switch kind {
		case ChartScatter, ChartBubble:
			xs := make([]float64, len(ds.Data))
			ys := make([]float64, len(ds.Data))
			rs := make([]float64, len(ds.Data))
			for j, pt := range ds.Data {
				xs[j] = pt.X.Or(float64(j + 1))
				ys[j] = pt.Y.Or(0)
				rs[j] = pt.R.Or(1)
			}
			series = pptx.NewXYSeries(title, xs, ys, rs)
		default:
			values := make([]float64, len(ds.Data))
			for j, pt := range ds.Data {
				values[j] = pt.Y.Or(0)
			}
			series = pptx.NewChartSeriesOrdered(title, categories, values)
		}
		series.SetFillColor(color)

		if kind == ChartPie || kind == ChartDoughnut {
			series.PointColors = make([]pptx.Color, len(series.Values))
			for j := range series.PointColors {
				fallback := palette[j%len(palette)]
				if j < len(ds.BackgroundColor) {
					series.PointColors[j] = resolve.Color(ds.BackgroundColor[j].String(), fallback, defaultPrimary)
				} else {
					series.PointColors[j] = resolve.Color(fallback, "", defaultPrimary)
				}
			}
		}
		if kind == ChartLine || kind == ChartScatter || kind == ChartRadar {
			series.Marker = &pptx.SeriesMarker{Symbol: pptx.MarkerCircle, Size: 5}
		}
		chartType.AddSeries(series)
	}

	shape := s.CreateChartShape()
	box.Apply(shape)
	shape.SetName("chart")
	shape.GetPlotArea().SetType(chartType)

	if p.Title.IsBlank() {
		shape.GetTitle().SetVisible(false)
	} else {
		shape.GetTitle().SetText(p.Title.Trimmed())
		shape.GetTitle().Font.SetName(ctx.font("", resolve.FontHeading)).SetColor(resolve.Color(ctx.textColor(), "", defaultTextColor))
	}

	legend := shape.GetLegend()
	legend.Visible = len(datasets) > 1 || kind == ChartPie || kind == ChartDoughnut
	if p.ShowLegend != nil {
		legend.Visible = bool(*p.ShowLegend)
	}

	if kind != ChartPie && kind != ChartDoughnut {
		shape.GetPlotArea().GetAxisX().SetTitle(p.XAxisLabel.Trimmed())
		shape.GetPlotArea().GetAxisY().SetTitle(p.YAxisLabel.Trimmed()).SetMajorGridlines(pptx.NewGridlines())
	}
	return nil
}
