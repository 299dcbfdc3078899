package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrUnknownTimeRange = errors.New("unknown time range")

// TimeRange limits a time series to its most recent days.
type TimeRange string

const (
	RangeWeek     TimeRange = "1week"
	RangeMonth    TimeRange = "1month"
	RangeQuarter  TimeRange = "3months"
	RangeHalfYear TimeRange = "6months"
	RangeYear     TimeRange = "1year"
	RangeAll      TimeRange = "all"
)

var timeRanges = []struct {
	r     TimeRange
	days  int
	label string
}{
	{RangeWeek, 7, "1 Week"},
	{RangeMonth, 30, "1 Month"},
	{RangeQuarter, 90, "3 Months"},
	{RangeHalfYear, 180, "6 Months"},
	{RangeYear, 365, "1 Year"},
	{RangeAll, 0, "All"},
}

func TimeRanges() []TimeRange {
	out := make([]TimeRange, len(timeRanges))
	for i, tr := range timeRanges {
		out[i] = tr.r
	}
	return out
}

// ParseTimeRange accepts the range ids; empty text is RangeAll.
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RangeAll, nil
	}
	for _, tr := range timeRanges {
		if string(tr.r) == s {
			return tr.r, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTimeRange, s)
}

// Days is the window length, 0 for RangeAll.
func (r TimeRange) Days() int {
	for _, tr := range timeRanges {
		if tr.r == r {
			return tr.days
		}
	}
	return 0
}

func (r TimeRange) Label() string {
	for _, tr := range timeRanges {
		if tr.r == r {
			return tr.label
		}
	}
	return string(r)
}

// WithinRange keeps the points of a chronological series that fall in the
// last r.Days() days before its latest point.
func WithinRange(s Series, r TimeRange) Series {
	days := r.Days()
	if days == 0 || len(s.Points) == 0 {
		return s
	}
	cutoff := s.Points[len(s.Points)-1].Time.AddDate(0, 0, -days)
	out := s
	out.Points = nil
	for _, p := range s.Points {
		if !p.Time.Before(cutoff) {
			out.Points = append(out.Points, p)
		}
	}
	return out
}

type Direction string

const (
	Increasing  Direction = "↗ Increasing"
	Decreasing  Direction = "↘ Decreasing"
	NoDirection Direction = "N/A"
)

// SeriesStats is the statistics panel of a time series. StdDev is the
// population deviation. Direction compares the last value with the first.
type SeriesStats struct {
	From      time.Time
	To        time.Time
	Count     int
	Min       float64
	Max       float64
	Mean      float64
	StdDev    float64
	Direction Direction
}

// TimeSeriesStats returns false for a series without points.
func TimeSeriesStats(s Series) (SeriesStats, bool) {
	n := len(s.Points)
	if n == 0 {
		return SeriesStats{}, false
	}
	first, last := s.Points[0], s.Points[n-1]
	st := SeriesStats{
		From:      first.Time,
		To:        last.Time,
		Count:     n,
		Min:       first.Y,
		Max:       first.Y,
		Direction: NoDirection,
	}
	var sum float64
	for _, p := range s.Points {
		st.Min = math.Min(st.Min, p.Y)
		st.Max = math.Max(st.Max, p.Y)
		sum += p.Y
	}
	st.Mean = sum / float64(n)
	var sq float64
	for _, p := range s.Points {
		sq += (p.Y - st.Mean) * (p.Y - st.Mean)
	}
	st.StdDev = math.Sqrt(sq / float64(n))
	if n > 1 {
		st.Direction = Decreasing
		if last.Y > first.Y {
			st.Direction = Increasing
		}
	}
	return st, true
}

func withUnit(format string, v float64, unit string) string {
	return strings.TrimSpace(fmt.Sprintf(format, v) + " " + unit)
}

func (st SeriesStats) Lines(unit string) []string {
	return []string{
		fmt.Sprintf("Date Range: %s - %s", st.From.UTC().Format("Jan 2, 2006"), st.To.UTC().Format("Jan 2, 2006")),
		"Min Value: " + withUnit("%.2f", st.Min, unit),
		"Max Value: " + withUnit("%.2f", st.Max, unit),
		"Average: " + withUnit("%.2f", st.Mean, unit),
		"Std Dev: " + withUnit("%.2f", st.StdDev, unit),
		"Trend: " + string(st.Direction),
	}
}

func (st ProfileStats) Lines(unit string) []string {
	return []string{
		fmt.Sprintf("Max Depth: %.0f m", st.MaxDepth),
		"Min Value: " + withUnit("%.1f", st.MinValue, unit),
		"Max Value: " + withUnit("%.1f", st.MaxValue, unit),
	}
}
