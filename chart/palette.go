package chart

var Palette = []string{
	"#ef4444",
	"#f97316",
	"#eab308",
	"#22c55e",
	"#06b6d4",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
	"#84cc16",
	"#f59e0b",
}

const (
	TimeSeriesColor = "#f97316"
	TrendColor      = "#10b981"
)

// ColorFor is stable for a given series position.
func ColorFor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}
