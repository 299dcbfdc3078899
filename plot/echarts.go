package plot

import (
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	argochart "github.com/pivolan/argo_explorer/chart"
)

func px(v float64) string {
	return strconv.Itoa(int(v)) + "px"
}

func subtitle(b argochart.Bundle) string {
	if len(b.Stats) == 0 {
		return b.Subtitle
	}
	return b.Subtitle + "\n" + strings.Join(b.Stats, " · ")
}

// RenderTimeSeriesHTML writes an interactive page for a time series
// bundle. Hover tooltips come from the browser side.
func RenderTimeSeriesHTML(b argochart.Bundle, w io.Writer) error {
	if len(b.Series) == 0 || len(b.Series[0].Series.Points) == 0 {
		return ErrNothingToDraw
	}
	s := b.Series[0]
	points := s.Series.Points

	labels := make([]string, len(points))
	values := make([]opts.LineData, len(points))
	for i, p := range points {
		labels[i] = argochart.DateLabel(p.X)
		values[i] = opts.LineData{
			Name:  argochart.TimeSeriesTooltip(s.Series, p).Label,
			Value: p.Y,
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: b.Title,
			Width:     px(b.Layout.Width),
			Height:    px(b.Layout.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: b.Title, Subtitle: subtitle(b)}),
		charts.WithXAxisOpts(opts.XAxis{Name: b.XTitle}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: b.YTitle,
			Min:  b.YScale.DomainMin,
			Max:  b.YScale.DomainMax,
		}),
	)
	line.SetXAxis(labels).AddSeries(s.Series.Label(), values,
		charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}))

	if b.Trend != nil {
		trend := make([]opts.LineData, len(points))
		for i := range points {
			trend[i] = opts.LineData{Value: b.Trend.Trend.At(i)}
		}
		line.AddSeries("Trend", trend,
			charts.WithLineStyleOpts(opts.LineStyle{Color: b.Trend.Color, Type: "dashed"}))
	}
	return line.Render(w)
}
