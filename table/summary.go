package table

import (
	"math"
	"sort"

	"github.com/pivolan/argo_explorer/domain/models"
)

type NumberStats struct {
	Count     int
	Average   float64
	Median    float64
	Min       float64
	Max       float64
	Quantiles map[float64]float64
	IQR       float64
}

var quantileLevels = []float64{0.1, 0.25, 0.75, 0.9}

// AnalyzeNumbers computes descriptive statistics, nil for empty input.
func AnalyzeNumbers(numbers []float64) *NumberStats {
	if len(numbers) == 0 {
		return nil
	}
	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	sum := 0.0
	for _, n := range numbers {
		sum += n
	}

	var median float64
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		median = sorted[len(sorted)/2]
	}

	quantiles := make(map[float64]float64, len(quantileLevels))
	for _, p := range quantileLevels {
		quantiles[p] = calculateQuantile(sorted, p)
	}

	return &NumberStats{
		Count:     len(numbers),
		Average:   sum / float64(len(numbers)),
		Median:    median,
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		Quantiles: quantiles,
		IQR:       quantiles[0.75] - quantiles[0.25],
	}
}

// calculateQuantile interpolates linearly between the closest ranks.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)
	if floor == ceil {
		return sorted[int(pos)]
	}
	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	return lower + (pos-floor)*(upper-lower)
}

// NumericValues collects the valid values of key, skipping malformed ones.
func NumericValues(records []models.Record, key string) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		v := r.Get(key)
		if v.Valid() && v.Type == models.TypeNumber {
			out = append(out, v.Num)
		}
	}
	return out
}

// Summary is the headline block shown above the float table.
type Summary struct {
	Records         int
	Oceans          int
	Floats          int
	Active          int
	AvgTemperature  float64
	AvgBatteryLevel float64
	Columns         map[string]*NumberStats
}

func Summarize(records []models.Record, columns []models.Column) Summary {
	s := Summary{
		Records: len(records),
		Columns: make(map[string]*NumberStats),
	}
	oceans := map[string]struct{}{}
	floats := map[string]struct{}{}
	for _, r := range records {
		if v := r.Get(models.KeyOcean); v.Valid() {
			oceans[v.String()] = struct{}{}
		}
		if v := r.Get(models.KeyFloatID); v.Valid() {
			floats[v.String()] = struct{}{}
		}
		if r.Get(models.KeyStatus).String() == models.StatusActive {
			s.Active++
		}
	}
	s.Oceans = len(oceans)
	s.Floats = len(floats)

	for _, c := range columns {
		if c.Type != models.TypeNumber {
			continue
		}
		if stats := AnalyzeNumbers(NumericValues(records, c.Key)); stats != nil {
			s.Columns[c.Key] = stats
		}
	}
	if st, ok := s.Columns[models.KeyTemperature]; ok {
		s.AvgTemperature = math.Round(st.Average*10) / 10
	}
	if st, ok := s.Columns[models.KeyBatteryLevel]; ok {
		s.AvgBatteryLevel = math.Round(st.Average)
	}
	return s
}

type Bin struct {
	Start float64
	End   float64
	Count int
}

// Histogram splits values into bins equal-width bins over [min, max].
// The max value lands in the last bin; constant input lands in bin 0.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Start = lo + float64(i)*width
		out[i].End = lo + float64(i+1)*width
	}
	for _, v := range values {
		idx := 0
		if width > 0 {
			idx = int(math.Floor((v - lo) / width))
		}
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

type StatusCount struct {
	Status string
	Count  int
}

// StatusCounts counts records per status in first-appearance order.
func StatusCounts(records []models.Record) []StatusCount {
	index := map[string]int{}
	var out []StatusCount
	for _, r := range records {
		v := r.Get(models.KeyStatus)
		if !v.Valid() {
			continue
		}
		i, ok := index[v.String()]
		if !ok {
			i = len(out)
			index[v.String()] = i
			out = append(out, StatusCount{Status: v.String()})
		}
		out[i].Count++
	}
	return out
}
