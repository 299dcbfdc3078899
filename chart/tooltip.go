package chart

import (
	"fmt"
	"strings"
)

// Tooltip is the text shown for a hovered point. Finding which point is
// hovered is up to the caller.
type Tooltip struct {
	Label  string
	Value  string
	Unit   string
	Series string
}

func (t Tooltip) String() string {
	lines := []string{t.Series, strings.TrimSpace(t.Value + " " + t.Unit)}
	if t.Label != "" {
		lines = append(lines, t.Label)
	}
	return strings.Join(lines, "\n")
}

func ProfileTooltip(s Series, p Point) Tooltip {
	return Tooltip{
		Label:  fmt.Sprintf("Depth: %.0f m", p.Y),
		Value:  fmt.Sprintf("%.2f", p.X),
		Unit:   s.Parameter.Unit,
		Series: s.Label(),
	}
}

func TimeSeriesTooltip(s Series, p Point) Tooltip {
	return Tooltip{
		Label:  p.Time.UTC().Format("January 2, 2006"),
		Value:  fmt.Sprintf("%.2f", p.Y),
		Unit:   s.Parameter.Unit,
		Series: s.Label(),
	}
}
