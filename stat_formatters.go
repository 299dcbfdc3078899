package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	argotable "github.com/pivolan/argo_explorer/table"
)

// GenerateTable renders the visible page as a text table. Selected rows
// are marked with an asterisk in the first column.
func GenerateTable(v argotable.View) string {
	t := table.NewWriter()

	header := table.Row{"", "ID"}
	for _, c := range v.Columns {
		label := c.Label
		if v.Sort.Column == c.Key {
			if v.Sort.Direction == argotable.Desc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		header = append(header, label)
	}
	t.AppendHeader(header)

	for _, r := range v.Rows {
		mark := ""
		if v.Selection.Contains(r.ID) {
			mark = "*"
		}
		row := table.Row{mark, r.ID}
		for _, c := range v.Columns {
			row = append(row, c.Format(r.Get(c.Key)))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleLight)
	return t.Render() + "\n" + pageLine(v)
}

func pageLine(v argotable.View) string {
	m := v.Meta
	line := fmt.Sprintf("Showing %d to %d of %d results (page %d of %d)",
		m.FirstRow, m.LastRow, m.FilteredCount, m.CurrentPage, m.TotalPages)
	if m.FilteredCount != m.TotalCount {
		line += fmt.Sprintf(", filtered from %d", m.TotalCount)
	}
	if v.SelectedCount > 0 {
		line += fmt.Sprintf(", %d selected", v.SelectedCount)
	}
	return line
}

// GenerateSummaryTable renders the headline cards followed by the numeric
// column statistics in column key order.
func GenerateSummaryTable(s argotable.Summary) string {
	cards := table.NewWriter()
	cards.AppendHeader(table.Row{"Oceans", "Floats", "Active", "Avg temperature", "Avg battery"})
	cards.AppendRow(table.Row{s.Oceans, s.Floats, s.Active,
		fmt.Sprintf("%.1f°C", s.AvgTemperature), fmt.Sprintf("%.0f%%", s.AvgBatteryLevel)})
	cards.SetStyle(table.StyleLight)

	keys := make([]string, 0, len(s.Columns))
	for k := range s.Columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats := table.NewWriter()
	stats.AppendHeader(table.Row{"Column", "Count", "Avg", "Min", "Median", "Max", "IQR"})
	for _, k := range keys {
		st := s.Columns[k]
		stats.AppendRow(table.Row{k, st.Count,
			round2(st.Average), round2(st.Min), round2(st.Median), round2(st.Max), round2(st.IQR)})
	}
	stats.SetStyle(table.StyleLight)

	return cards.Render() + "\n\n" + stats.Render()
}

func round2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatStats describes one numeric column for a chat reply.
func FormatStats(column string, stats *argotable.NumberStats) string {
	if stats == nil {
		return fmt.Sprintf("No numeric values in %s", column)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s\n\n", column)
	fmt.Fprintf(&b, "Count: %d\n", stats.Count)
	fmt.Fprintf(&b, "Average: %.2f\n", stats.Average)
	fmt.Fprintf(&b, "Median: %.2f\n", stats.Median)
	fmt.Fprintf(&b, "Min: %.2f\n", stats.Min)
	fmt.Fprintf(&b, "Max: %.2f\n\n", stats.Max)
	fmt.Fprintf(&b, "10th percentile: %.2f\n", stats.Quantiles[0.1])
	fmt.Fprintf(&b, "25th percentile (Q1): %.2f\n", stats.Quantiles[0.25])
	fmt.Fprintf(&b, "75th percentile (Q3): %.2f\n", stats.Quantiles[0.75])
	fmt.Fprintf(&b, "90th percentile: %.2f\n\n", stats.Quantiles[0.9])
	fmt.Fprintf(&b, "IQR: %.2f", stats.IQR)
	return b.String()
}
