package plot

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	argochart "github.com/pivolan/argo_explorer/chart"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNothingToDraw = errors.New("nothing to draw")

func hexColor(c string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}

func axisTicks(ticks []argochart.Tick) []chart.Tick {
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

// axisRange keeps go-chart on the exact padded domain of the scale.
func axisRange(s argochart.Scale, descending bool) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: s.DomainMin, Max: s.DomainMax, Descending: descending}
}

func background(l argochart.Layout) chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    int(l.Margin.Top) + 30,
			Left:   int(l.Margin.Left),
			Right:  int(l.Margin.Right),
			Bottom: int(l.Margin.Bottom),
		},
		FillColor:   drawing.ColorWhite,
		StrokeWidth: 1,
		StrokeColor: drawing.ColorFromHex("efefef"),
	}
}

var gridStyle = chart.Style{
	StrokeColor:     drawing.ColorFromHex("e5e7eb"),
	StrokeWidth:     1,
	StrokeDashArray: []float64{5.0, 5.0},
}

func gridLines(d argochart.Domain) []chart.GridLine {
	var out []chart.GridLine
	for _, v := range argochart.GridLines(d, argochart.NiceStep(d.Span())) {
		out = append(out, chart.GridLine{Value: v})
	}
	return out
}

func render(graph chart.Chart) ([]byte, error) {
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawProfile renders a profile bundle with depth increasing downward.
func DrawProfile(b argochart.Bundle) ([]byte, error) {
	if len(b.Series) == 0 {
		return nil, ErrNothingToDraw
	}
	var series []chart.Series
	for _, s := range b.Series {
		series = append(series, chart.ContinuousSeries{
			Name:    s.Series.Label(),
			XValues: s.Series.XValues(),
			YValues: s.Series.YValues(),
			Style: chart.Style{
				StrokeColor: hexColor(s.Color),
				StrokeWidth: 2,
				DotColor:    hexColor(s.Color),
				DotWidth:    3,
			},
		})
	}
	graph := chart.Chart{
		Title:      b.Title,
		Width:      int(b.Layout.Width),
		Height:     int(b.Layout.Height),
		Background: background(b.Layout),
		XAxis: chart.XAxis{
			Name:           b.XTitle,
			Range:          axisRange(b.XScale, false),
			Ticks:          axisTicks(b.XTicks),
			GridMajorStyle: gridStyle,
			GridLines:      gridLines(b.XScale.Domain()),
		},
		YAxis: chart.YAxis{
			Name:  b.YTitle,
			Range: axisRange(b.YScale, true),
			Ticks: axisTicks(b.YTicks),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return render(graph)
}

// DrawTimeSeries renders a time series bundle and its dashed trend line.
func DrawTimeSeries(b argochart.Bundle) ([]byte, error) {
	if len(b.Series) == 0 || len(b.Series[0].Series.Points) == 0 {
		return nil, ErrNothingToDraw
	}
	s := b.Series[0]
	series := []chart.Series{chart.ContinuousSeries{
		Name:    s.Series.Label(),
		XValues: s.Series.XValues(),
		YValues: s.Series.YValues(),
		Style: chart.Style{
			StrokeColor: hexColor(s.Color),
			StrokeWidth: 3,
			DotColor:    hexColor(s.Color),
			DotWidth:    4,
		},
	}}
	if b.Trend != nil {
		points := s.Series.Points
		series = append(series, chart.ContinuousSeries{
			Name:    "Trend",
			XValues: []float64{points[0].X, points[len(points)-1].X},
			YValues: []float64{b.Trend.Trend.Start(), b.Trend.Trend.End()},
			Style: chart.Style{
				StrokeColor:     hexColor(b.Trend.Color),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		})
	}
	graph := chart.Chart{
		Title:      b.Title,
		Width:      int(b.Layout.Width),
		Height:     int(b.Layout.Height),
		Background: background(b.Layout),
		XAxis: chart.XAxis{
			Name:  b.XTitle,
			Range: axisRange(b.XScale, false),
			Ticks: axisTicks(b.XTicks),
		},
		YAxis: chart.YAxis{
			Name:           b.YTitle,
			Range:          axisRange(b.YScale, false),
			Ticks:          axisTicks(b.YTicks),
			GridMajorStyle: gridStyle,
			GridLines:      gridLines(b.YScale.Domain()),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return render(graph)
}

func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	if len(barValues) == 0 {
		return nil, ErrNothingToDraw
	}
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)
	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	max := findMaxValue(data.getYValues())
	if max <= 0 {
		max = 1
	}
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: max,
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    12,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 45,
		FontSize:            12,
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawStatusPie renders the status share of floats. Empty categories are
// left out.
func DrawStatusPie(data dataBinsForGraph) ([]byte, error) {
	values := data.pieValues()
	if len(values) == 0 {
		return nil, ErrNothingToDraw
	}
	pie := chart.PieChart{
		Title:  data.GetNameGraph(),
		Width:  400,
		Height: 400,
		Values: values,
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
