package chart

import "math"

const (
	// DomainPadding is the fraction of the domain span added to each end.
	DomainPadding = 0.05
	// ValueHalfSpan replaces a zero-width value domain.
	ValueHalfSpan = 1.0
	// TimeHalfSpan replaces a zero-width time domain, in seconds.
	TimeHalfSpan = 24 * 60 * 60.0
)

type Domain struct {
	Min float64
	Max float64
}

func (d Domain) Span() float64 { return d.Max - d.Min }

// DomainOf returns the shared [min, max] of every value in every series.
// ok is false when there is no finite value at all.
func DomainOf(series ...[]float64) (d Domain, ok bool) {
	for _, values := range series {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if !ok {
				d = Domain{Min: v, Max: v}
				ok = true
				continue
			}
			d.Min = math.Min(d.Min, v)
			d.Max = math.Max(d.Max, v)
		}
	}
	return d, ok
}

// Pad widens d by fraction of its span on both ends. A degenerate domain
// becomes [v-halfSpan, v+halfSpan] so that scales never divide by zero.
func Pad(d Domain, fraction, halfSpan float64) Domain {
	if d.Max == d.Min {
		return Domain{Min: d.Min - halfSpan, Max: d.Max + halfSpan}
	}
	pad := d.Span() * fraction
	return Domain{Min: d.Min - pad, Max: d.Max + pad}
}

// Scale maps a domain linearly onto a pixel range. RangeStart is where
// DomainMin lands, so a range may run in either direction.
type Scale struct {
	DomainMin  float64
	DomainMax  float64
	RangeStart float64
	RangeEnd   float64
}

func NewScale(d Domain, rangeStart, rangeEnd float64) Scale {
	return Scale{DomainMin: d.Min, DomainMax: d.Max, RangeStart: rangeStart, RangeEnd: rangeEnd}
}

func (s Scale) Domain() Domain { return Domain{Min: s.DomainMin, Max: s.DomainMax} }

func (s Scale) Extent() float64 { return s.RangeEnd - s.RangeStart }

func (s Scale) Map(v float64) float64 {
	span := s.DomainMax - s.DomainMin
	if span == 0 {
		return s.RangeStart + s.Extent()/2
	}
	return s.RangeStart + (v-s.DomainMin)/span*s.Extent()
}

func (s Scale) Invert(px float64) float64 {
	extent := s.Extent()
	if extent == 0 {
		return s.DomainMin
	}
	return s.DomainMin + (px-s.RangeStart)/extent*(s.DomainMax-s.DomainMin)
}

// Plot is the drawable rectangle inside the chart margins.
type Plot struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (p Plot) Right() float64  { return p.Left + p.Width }
func (p Plot) Bottom() float64 { return p.Top + p.Height }

// NewHorizontalScale maps the domain left to right.
func NewHorizontalScale(d Domain, p Plot) Scale {
	return NewScale(d, p.Left, p.Right())
}

// NewDepthScale puts the shallowest depth at the top of the plot and the
// deepest at the bottom, the way ocean profiles are read.
func NewDepthScale(d Domain, p Plot) Scale {
	return NewScale(d, p.Top, p.Bottom())
}

// NewValueUpScale puts the largest value at the top of the plot.
func NewValueUpScale(d Domain, p Plot) Scale {
	return NewScale(d, p.Bottom(), p.Top)
}
