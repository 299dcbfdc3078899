package plot

import (
	"fmt"

	"github.com/pivolan/argo_explorer/table"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var statusColors = map[string]string{
	"active":      "22c55e",
	"maintenance": "eab308",
	"offline":     "ef4444",
}

// dataBinsForGraph is one labelled bar per bin or category.
type dataBinsForGraph struct {
	labels    []string
	yValues   []float64
	colors    []string
	nameYAxis string
	nameGraph string
}

// NewHistogramData labels each bin by its range, "12.5-15.0".
func NewHistogramData(bins []table.Bin, nameGraph string) dataBinsForGraph {
	d := dataBinsForGraph{nameYAxis: "Records", nameGraph: nameGraph}
	for _, b := range bins {
		d.labels = append(d.labels, fmt.Sprintf("%.1f-%.1f", b.Start, b.End))
		d.yValues = append(d.yValues, float64(b.Count))
		d.colors = append(d.colors, "3b82f6")
	}
	return d
}

func NewStatusData(counts []table.StatusCount) dataBinsForGraph {
	d := dataBinsForGraph{nameYAxis: "Floats", nameGraph: "Float status"}
	for _, c := range counts {
		color, ok := statusColors[c.Status]
		if !ok {
			color = "8b5cf6"
		}
		d.labels = append(d.labels, c.Status)
		d.yValues = append(d.yValues, float64(c.Count))
		d.colors = append(d.colors, color)
	}
	return d
}

func (d dataBinsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataBinsForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataBinsForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataBinsForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.yValues) == 0 || minBarWidth <= 0 {
		return 0, 0
	}
	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)
	x := 1.1
	if len(d.labels) < 2 {
		x = 10.0
	} else if len(d.labels) < 10 {
		x = 3.0
	}
	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(len(d.labels)) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d dataBinsForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, len(d.labels))
	for i, label := range d.labels {
		bars[i] = chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(d.colors[i]).WithAlpha(200),
				StrokeColor: drawing.ColorFromHex(d.colors[i]),
			},
		}
	}
	return bars
}

func (d dataBinsForGraph) pieValues() []chart.Value {
	values := make([]chart.Value, 0, len(d.labels))
	for i, label := range d.labels {
		if d.yValues[i] <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: d.yValues[i],
			Label: fmt.Sprintf("%s (%.0f)", label, d.yValues[i]),
			Style: chart.Style{FillColor: drawing.ColorFromHex(d.colors[i])},
		})
	}
	return values
}
