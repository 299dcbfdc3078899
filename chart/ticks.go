package chart

import (
	"fmt"
	"math"
	"time"
)

const (
	ProfileValueTicks = 6
	ProfileDepthTicks = 5
	TimeValueTicks    = 5
	TimeDateTicks     = 6
)

type Tick struct {
	Value    float64
	Position float64
	Label    string
}

type LabelFunc func(float64) string

// NumberLabel formats to one decimal place.
func NumberLabel(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// DateLabel formats unix seconds as an abbreviated month and day, "Jan 2".
func DateLabel(v float64) string {
	return time.Unix(int64(math.Round(v)), 0).UTC().Format("Jan 2")
}

// Ticks spreads intervals+1 ticks evenly over the scale domain, both ends
// included.
func Ticks(s Scale, intervals int, label LabelFunc) []Tick {
	if intervals < 1 {
		intervals = 1
	}
	if label == nil {
		label = NumberLabel
	}
	ticks := make([]Tick, 0, intervals+1)
	span := s.DomainMax - s.DomainMin
	for i := 0; i <= intervals; i++ {
		v := s.DomainMin + float64(i)/float64(intervals)*span
		ticks = append(ticks, Tick{Value: v, Position: s.Map(v), Label: label(v)})
	}
	return ticks
}

// NiceStep picks a 1/2/5 grid step for a span so that roughly five to ten
// grid lines fit.
func NiceStep(span float64) float64 {
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(span)))
	normalized := span / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}
	return step * magnitude
}

// GridLines lists the multiples of step inside d.
func GridLines(d Domain, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var out []float64
	for v := math.Ceil(d.Min/step) * step; v <= d.Max+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}
