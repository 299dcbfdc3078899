package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pivolan/argo_explorer/domain/models"
)

var ErrNoPoints = errors.New("no points to plot")

type Kind string

const (
	KindProfile    Kind = "profile"
	KindTimeSeries Kind = "timeseries"
)

type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

type Layout struct {
	Width  float64
	Height float64
	Margin Margin
}

var (
	DefaultMargin    = Margin{Top: 20, Right: 60, Bottom: 60, Left: 80}
	ProfileLayout    = Layout{Width: 600, Height: 400, Margin: DefaultMargin}
	TimeSeriesLayout = Layout{Width: 700, Height: 300, Margin: DefaultMargin}
)

func (l Layout) Plot() Plot {
	return Plot{
		Left:   l.Margin.Left,
		Top:    l.Margin.Top,
		Width:  l.Width - l.Margin.Left - l.Margin.Right,
		Height: l.Height - l.Margin.Top - l.Margin.Bottom,
	}
}

type PixelPoint struct {
	X float64
	Y float64
}

type RenderedSeries struct {
	Series Series
	Color  string
	Path   []PixelPoint
}

// Polyline is the path in SVG points syntax.
func (r RenderedSeries) Polyline() string {
	parts := make([]string, len(r.Path))
	for i, p := range r.Path {
		parts[i] = strconv.FormatFloat(p.X, 'f', 2, 64) + "," + strconv.FormatFloat(p.Y, 'f', 2, 64)
	}
	return strings.Join(parts, " ")
}

// TrendLine is the fitted segment drawn over a time series.
type TrendLine struct {
	Trend Trend
	From  PixelPoint
	To    PixelPoint
	Color string
}

// Bundle is everything a renderer needs to draw one chart.
type Bundle struct {
	Kind      Kind
	Title     string
	Subtitle  string
	Parameter models.ParameterInfo
	Layout    Layout
	Plot      Plot
	XScale    Scale
	YScale    Scale
	XTicks    []Tick
	YTicks    []Tick
	XTitle    string
	YTitle    string
	Series    []RenderedSeries
	Legend    []LegendEntry
	Trend     *TrendLine
	// Stats are the lines of the statistics panel shown with the chart.
	Stats []string
}

func project(s Series, x, y Scale) []PixelPoint {
	out := make([]PixelPoint, len(s.Points))
	for i, p := range s.Points {
		out[i] = PixelPoint{X: x.Map(p.X), Y: y.Map(p.Y)}
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// BuildProfileChart lays out depth profiles on one shared value domain.
// Depth grows downward.
func BuildProfileChart(series []Series, param models.Parameter, layout Layout) (Bundle, error) {
	var values, depths [][]float64
	for _, s := range series {
		values = append(values, s.XValues())
		depths = append(depths, s.YValues())
	}
	vd, ok := DomainOf(values...)
	if !ok {
		return Bundle{}, ErrNoPoints
	}
	dd, _ := DomainOf(depths...)

	info := param.Info()
	plot := layout.Plot()
	x := NewHorizontalScale(Pad(vd, DomainPadding, ValueHalfSpan), plot)
	y := NewDepthScale(Pad(dd, DomainPadding, ValueHalfSpan), plot)

	b := Bundle{
		Kind:      KindProfile,
		Title:     info.Label + " vs Depth",
		Parameter: info,
		Layout:    layout,
		Plot:      plot,
		XScale:    x,
		YScale:    y,
		XTicks:    Ticks(x, ProfileValueTicks, NumberLabel),
		YTicks:    Ticks(y, ProfileDepthTicks, NumberLabel),
		XTitle:    info.AxisTitle(),
		YTitle:    "Depth (m)",
		Legend:    Legend(series),
	}
	st := StatsFor(series)
	b.Subtitle = fmt.Sprintf("%s from %s", plural(st.Profiles, "profile"), plural(st.Oceans, "ocean"))
	b.Stats = st.Lines(info.Unit)
	for i, s := range series {
		b.Series = append(b.Series, RenderedSeries{Series: s, Color: ColorFor(i), Path: project(s, x, y)})
	}
	return b, nil
}

// BuildTimeSeriesChart lays out one float's parameter over time with its
// trend line when there are at least two samples.
func BuildTimeSeriesChart(s Series, layout Layout) (Bundle, error) {
	td, ok := DomainOf(s.XValues())
	if !ok {
		return Bundle{}, ErrNoPoints
	}
	vd, _ := DomainOf(s.YValues())

	plot := layout.Plot()
	x := NewHorizontalScale(Pad(td, DomainPadding, TimeHalfSpan), plot)
	y := NewValueUpScale(Pad(vd, DomainPadding, ValueHalfSpan), plot)

	b := Bundle{
		Kind:      KindTimeSeries,
		Title:     fmt.Sprintf("%s Time Series - Float %s", s.Parameter.Label, s.ID),
		Subtitle:  plural(len(s.Points), "measurement"),
		Parameter: s.Parameter,
		Layout:    layout,
		Plot:      plot,
		XScale:    x,
		YScale:    y,
		XTicks:    Ticks(x, TimeDateTicks, DateLabel),
		YTicks:    Ticks(y, TimeValueTicks, NumberLabel),
		XTitle:    "Date",
		YTitle:    s.Parameter.AxisTitle(),
		Series:    []RenderedSeries{{Series: s, Color: TimeSeriesColor, Path: project(s, x, y)}},
		Legend:    []LegendEntry{{Label: s.Label(), Color: TimeSeriesColor}},
	}
	if st, ok := TimeSeriesStats(s); ok {
		b.Stats = st.Lines(s.Parameter.Unit)
	}
	if t, ok := FitTrend(s.YValues()); ok {
		first, last := s.Points[0], s.Points[len(s.Points)-1]
		b.Trend = &TrendLine{
			Trend: t,
			From:  PixelPoint{X: x.Map(first.X), Y: y.Map(t.Start())},
			To:    PixelPoint{X: x.Map(last.X), Y: y.Map(t.End())},
			Color: TrendColor,
		}
		b.Legend = append(b.Legend, LegendEntry{Label: "Trend", Color: TrendColor})
	}
	return b, nil
}
