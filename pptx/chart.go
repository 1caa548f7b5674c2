package pptx

// ChartShape represents a chart embedded in a slide.
type ChartShape struct {
	BaseShape
	title    *ChartTitle
	plotArea *PlotArea
	legend   *ChartLegend
}

func (c *ChartShape) GetType() ShapeType { return ShapeTypeChart }

// NewChartShape creates a new chart shape.
func NewChartShape() *ChartShape {
	return &ChartShape{
		title:    NewChartTitle(),
		plotArea: NewPlotArea(),
		legend:   NewChartLegend(),
	}
}

// GetTitle returns the chart title.
func (c *ChartShape) GetTitle() *ChartTitle { return c.title }

// GetPlotArea returns the plot area.
func (c *ChartShape) GetPlotArea() *PlotArea { return c.plotArea }

// GetLegend returns the chart legend.
func (c *ChartShape) GetLegend() *ChartLegend { return c.legend }

// ChartTitle represents a chart title.
type ChartTitle struct {
	Text    string
	Visible bool
	Font    *Font
}

// NewChartTitle creates a new chart title.
func NewChartTitle() *ChartTitle {
	f := NewFont()
	f.Size = 14
	f.Bold = true
	return &ChartTitle{Visible: true, Font: f}
}

// SetText sets the title text.
func (ct *ChartTitle) SetText(text string) *ChartTitle {
	ct.Text = text
	return ct
}

// SetVisible sets the title visibility.
func (ct *ChartTitle) SetVisible(v bool) *ChartTitle {
	ct.Visible = v
	return ct
}

// PlotArea represents the chart plot area.
type PlotArea struct {
	chartType ChartType
	axisX     *ChartAxis
	axisY     *ChartAxis
}

// NewPlotArea creates a new plot area.
func NewPlotArea() *PlotArea {
	return &PlotArea{
		axisX: NewChartAxis(),
		axisY: NewChartAxis(),
	}
}

// SetType sets the chart type.
func (pa *PlotArea) SetType(ct ChartType) { pa.chartType = ct }

// GetType returns the chart type.
func (pa *PlotArea) GetType() ChartType { return pa.chartType }

// GetAxisX returns the category (or X value) axis.
func (pa *PlotArea) GetAxisX() *ChartAxis { return pa.axisX }

// GetAxisY returns the value axis.
func (pa *PlotArea) GetAxisY() *ChartAxis { return pa.axisY }

// ChartAxis represents a chart axis.
type ChartAxis struct {
	Title          string
	Visible        bool
	ReversedOrder  bool
	MajorGridlines *Gridlines
	TickLabelPos   string
}

// Tick label position constants.
const (
	TickLabelPosNextTo = "nextTo"
	TickLabelPosNone   = "none"
)

// NewChartAxis creates a new visible chart axis.
func NewChartAxis() *ChartAxis {
	return &ChartAxis{
		Visible:      true,
		TickLabelPos: TickLabelPosNextTo,
	}
}

// SetTitle sets the axis title.
func (a *ChartAxis) SetTitle(title string) *ChartAxis {
	a.Title = title
	return a
}

// SetVisible sets axis visibility.
func (a *ChartAxis) SetVisible(v bool) *ChartAxis {
	a.Visible = v
	return a
}

// SetMajorGridlines sets the major gridlines.
func (a *ChartAxis) SetMajorGridlines(g *Gridlines) *ChartAxis {
	a.MajorGridlines = g
	return a
}

// Gridlines represents chart gridlines.
type Gridlines struct {
	Width int64 // in EMU
	Color Color
}

// NewGridlines creates thin light-gray gridlines.
func NewGridlines() *Gridlines {
	return &Gridlines{
		Width: 9525,
		Color: NewColor("D9D9D9"),
	}
}

// ChartLegend represents a chart legend.
type ChartLegend struct {
	Visible  bool
	Position LegendPosition
}

// LegendPosition represents the legend position.
type LegendPosition string

const (
	LegendBottom LegendPosition = "b"
	LegendTop    LegendPosition = "t"
	LegendLeft   LegendPosition = "l"
	LegendRight  LegendPosition = "r"
)

// NewChartLegend creates a new chart legend.
func NewChartLegend() *ChartLegend {
	return &ChartLegend{
		Visible:  true,
		Position: LegendBottom,
	}
}

// --- Chart Types ---

// ChartType is the interface for chart types.
type ChartType interface {
	GetChartTypeName() string
	// GetSeries returns the data series in plot order.
	GetSeries() []*ChartSeries
}

// ChartSeries represents a data series in a chart.
//
// Category charts use Categories and Values index-aligned. Scatter and bubble
// charts use XValues and Values, and bubble charts additionally Sizes.
type ChartSeries struct {
	Title      string
	Categories []string
	Values     []float64
	XValues    []float64
	Sizes      []float64
	FillColor  Color
	// PointColors overrides the fill per data point (pie, doughnut).
	PointColors []Color
	ShowValue   bool
	Marker      *SeriesMarker
}

// NewChartSeriesOrdered creates a series with ordered categories.
// If len(values) < len(categories), missing values default to 0.
// Extra values beyond len(categories) are ignored.
func NewChartSeriesOrdered(title string, categories []string, values []float64) *ChartSeries {
	vals := make([]float64, len(categories))
	copy(vals, values)
	return &ChartSeries{
		Title:      title,
		Categories: categories,
		Values:     vals,
	}
}

// NewXYSeries creates a scatter or bubble series. Missing sizes default to 1.
func NewXYSeries(title string, xs, ys, sizes []float64) *ChartSeries {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	s := &ChartSeries{
		Title:   title,
		XValues: append([]float64(nil), xs[:n]...),
		Values:  append([]float64(nil), ys[:n]...),
		Sizes:   make([]float64, n),
	}
	for i := range s.Sizes {
		s.Sizes[i] = 1
		if i < len(sizes) {
			s.Sizes[i] = sizes[i]
		}
	}
	return s
}

// SetFillColor sets the series fill color.
func (s *ChartSeries) SetFillColor(c Color) *ChartSeries {
	s.FillColor = c
	return s
}

// SeriesMarker represents a series marker.
type SeriesMarker struct {
	Symbol string
	Size   int
}

// Marker symbol constants.
const (
	MarkerCircle = "circle"
	MarkerNone   = "none"
)

// seriesList is embedded by every chart type.
type seriesList struct {
	Series []*ChartSeries
}

// AddSeries appends a data series.
func (l *seriesList) AddSeries(s *ChartSeries) {
	l.Series = append(l.Series, s)
}

// GetSeries returns the data series.
func (l *seriesList) GetSeries() []*ChartSeries { return l.Series }

// BarChart represents a bar/column chart.
type BarChart struct {
	seriesList
	BarGrouping     string
	BarDirection    string
	GapWidthPercent int
}

// Bar grouping constants.
const (
	BarGroupingClustered = "clustered"
	BarGroupingStacked   = "stacked"
)

// Bar direction constants.
const (
	BarDirectionVertical   = "col"
	BarDirectionHorizontal = "bar"
)

func (b *BarChart) GetChartTypeName() string { return "bar" }

// NewBarChart creates a new clustered column chart.
func NewBarChart() *BarChart {
	return &BarChart{
		BarGrouping:     BarGroupingClustered,
		BarDirection:    BarDirectionVertical,
		GapWidthPercent: 150,
	}
}

// Bar3DChart represents a 3D bar chart.
type Bar3DChart struct {
	BarChart
}

func (b *Bar3DChart) GetChartTypeName() string { return "bar3D" }

// NewBar3DChart creates a new 3D bar chart.
func NewBar3DChart() *Bar3DChart {
	return &Bar3DChart{BarChart: *NewBarChart()}
}

// LineChart represents a line chart.
type LineChart struct {
	seriesList
	IsSmooth bool
}

func (l *LineChart) GetChartTypeName() string { return "line" }

// NewLineChart creates a new line chart.
func NewLineChart() *LineChart {
	return &LineChart{}
}

// AreaChart represents an area chart.
type AreaChart struct {
	seriesList
}

func (a *AreaChart) GetChartTypeName() string { return "area" }

// NewAreaChart creates a new area chart.
func NewAreaChart() *AreaChart {
	return &AreaChart{}
}

// PieChart represents a pie chart.
type PieChart struct {
	seriesList
}

func (p *PieChart) GetChartTypeName() string { return "pie" }

// NewPieChart creates a new pie chart.
func NewPieChart() *PieChart {
	return &PieChart{}
}

// DoughnutChart represents a doughnut chart.
type DoughnutChart struct {
	seriesList
	HoleSize int // percentage 10-90
}

func (d *DoughnutChart) GetChartTypeName() string { return "doughnut" }

// NewDoughnutChart creates a new doughnut chart.
func NewDoughnutChart() *DoughnutChart {
	return &DoughnutChart{HoleSize: 50}
}

// ScatterChart represents an XY scatter chart.
type ScatterChart struct {
	seriesList
	IsSmooth bool
}

func (s *ScatterChart) GetChartTypeName() string { return "scatter" }

// NewScatterChart creates a new scatter chart.
func NewScatterChart() *ScatterChart {
	return &ScatterChart{}
}

// BubbleChart represents a bubble chart.
type BubbleChart struct {
	seriesList
	BubbleScale int // percent
}

func (b *BubbleChart) GetChartTypeName() string { return "bubble" }

// NewBubbleChart creates a new bubble chart.
func NewBubbleChart() *BubbleChart {
	return &BubbleChart{BubbleScale: 100}
}

// RadarChart represents a radar chart.
type RadarChart struct {
	seriesList
	Filled bool
}

func (r *RadarChart) GetChartTypeName() string { return "radar" }

// NewRadarChart creates a new radar chart.
func NewRadarChart() *RadarChart {
	return &RadarChart{}
}
