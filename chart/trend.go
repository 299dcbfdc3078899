package chart

// Trend is an ordinary least squares fit of value against sample index.
type Trend struct {
	Slope     float64
	Intercept float64
	N         int
}

// FitTrend returns false for fewer than two values.
func FitTrend(values []float64) (Trend, bool) {
	n := len(values)
	if n < 2 {
		return Trend{}, false
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	return Trend{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / fn,
		N:         n,
	}, true
}

func (t Trend) At(index int) float64 {
	return t.Intercept + t.Slope*float64(index)
}

func (t Trend) Start() float64 { return t.At(0) }

func (t Trend) End() float64 { return t.At(t.N - 1) }
