package chart

import (
	"fmt"
	"sort"
	"time"

	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/go_utils"
)

type Point struct {
	X        float64
	Y        float64
	Time     time.Time
	RecordID models.RecordID
}

// Series is one plotted float/parameter combination.
type Series struct {
	ID        string
	Group     string
	Parameter models.ParameterInfo
	Points    []Point
}

// Label is the legend text, "2901234 (Indian Ocean)".
func (s Series) Label() string {
	if s.Group == "" {
		return s.ID
	}
	return fmt.Sprintf("%s (%s)", s.ID, s.Group)
}

func (s Series) XValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.X
	}
	return out
}

func (s Series) YValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Y
	}
	return out
}

// FloatIDs lists the distinct float ids of ds in first-appearance order.
func FloatIDs(ds *models.Dataset) []string {
	if ds == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range ds.Records {
		id := r.Get(models.KeyFloatID)
		if !id.Valid() || seen[id.String()] {
			continue
		}
		seen[id.String()] = true
		out = append(out, id.String())
	}
	return out
}

// ProfileSeries builds one depth profile per included float. Series keep
// the order in which floats first appear in ds; points run from shallow
// to deep. Records with a malformed value or depth are skipped.
func ProfileSeries(ds *models.Dataset, param models.Parameter, included []string) []Series {
	if ds == nil || len(included) == 0 {
		return nil
	}
	info := param.Info()
	index := map[string]int{}
	var out []Series
	for _, r := range ds.Records {
		id := r.Get(models.KeyFloatID).String()
		if !go_utils.InArray(id, included) {
			continue
		}
		value, depth := r.Get(string(param)), r.Get(models.KeyDepth)
		if !value.Valid() || !depth.Valid() {
			continue
		}
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, Series{ID: id, Group: r.Get(models.KeyOcean).String(), Parameter: info})
		}
		out[i].Points = append(out[i].Points, Point{X: value.Num, Y: depth.Num, RecordID: r.ID})
	}
	for i := range out {
		points := out[i].Points
		sort.SliceStable(points, func(a, b int) bool { return points[a].Y < points[b].Y })
	}
	return out
}

// TimeSeriesFor builds the chronological series of one float. X is unix
// seconds.
func TimeSeriesFor(ds *models.Dataset, param models.Parameter, floatID string) Series {
	s := Series{ID: floatID, Parameter: param.Info()}
	if ds == nil {
		return s
	}
	for _, r := range ds.Records {
		if r.Get(models.KeyFloatID).String() != floatID {
			continue
		}
		if s.Group == "" {
			s.Group = r.Get(models.KeyOcean).String()
		}
		value, date := r.Get(string(param)), r.Get(models.KeyDate)
		if !value.Valid() || !date.Valid() {
			continue
		}
		s.Points = append(s.Points, Point{
			X:        float64(date.Time.Unix()),
			Y:        value.Num,
			Time:     date.Time,
			RecordID: r.ID,
		})
	}
	sort.SliceStable(s.Points, func(a, b int) bool { return s.Points[a].Time.Before(s.Points[b].Time) })
	return s
}

type LegendEntry struct {
	Label string
	Color string
}

func Legend(series []Series) []LegendEntry {
	out := make([]LegendEntry, len(series))
	for i, s := range series {
		out[i] = LegendEntry{Label: s.Label(), Color: ColorFor(i)}
	}
	return out
}

// ProfileStats is the statistics block next to the profile chart.
type ProfileStats struct {
	Profiles int
	Oceans   int
	MaxDepth float64
	MinValue float64
	MaxValue float64
}

func StatsFor(series []Series) ProfileStats {
	st := ProfileStats{Profiles: len(series)}
	oceans := map[string]struct{}{}
	var values, depths [][]float64
	for _, s := range series {
		oceans[s.Group] = struct{}{}
		values = append(values, s.XValues())
		depths = append(depths, s.YValues())
	}
	st.Oceans = len(oceans)
	if d, ok := DomainOf(values...); ok {
		st.MinValue, st.MaxValue = d.Min, d.Max
	}
	if d, ok := DomainOf(depths...); ok {
		st.MaxDepth = d.Max
	}
	return st
}
