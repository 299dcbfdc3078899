package main

import (
	"strings"
	"testing"

	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/table"
	"github.com/stretchr/testify/assert"
)

func smallExplorer() *table.Explorer {
	cols := []models.Column{
		{Key: models.KeyFloatID, Label: "Float ID", Type: models.TypeString},
		{Key: models.KeyTemperature, Label: "Temperature (°C)", Type: models.TypeNumber},
	}
	ds := models.NewDataset("small", cols, []models.Record{
		models.NewRecord("a", map[string]models.Value{
			models.KeyFloatID:     models.String("F1"),
			models.KeyTemperature: models.Number(20.123),
		}),
		models.NewRecord("b", map[string]models.Value{
			models.KeyFloatID:     models.String("F2"),
			models.KeyTemperature: models.Number(18),
		}),
	})
	return table.NewExplorer(ds, 10)
}

func TestGenerateTable(t *testing.T) {
	ex := smallExplorer()
	ex.ToggleRowSelection("b")
	v, err := ex.SetSort(models.KeyTemperature)
	assert.NoError(t, err)

	out := GenerateTable(v)
	assert.Contains(t, out, "TEMPERATURE (°C) ↑")
	assert.Less(t, strings.Index(out, "F2"), strings.Index(out, "F1"))
	assert.Contains(t, out, "Showing 1 to 2 of 2 results (page 1 of 1), 1 selected")
}

func TestGenerateTableFiltered(t *testing.T) {
	ex := smallExplorer()
	out := GenerateTable(ex.SetFilterText("f1"))
	assert.Contains(t, out, "Showing 1 to 1 of 1 results (page 1 of 1), filtered from 2")
	assert.NotContains(t, out, "F2")
}

func TestGenerateSummaryTable(t *testing.T) {
	ex := smallExplorer()
	s := table.Summarize(ex.Dataset().Records, ex.Dataset().Columns)
	out := GenerateSummaryTable(s)
	assert.Contains(t, out, "19.1°C")
	assert.Contains(t, out, "temperature")
	assert.Contains(t, out, "20.12")
}

func TestFormatStats(t *testing.T) {
	out := FormatStats("depth", table.AnalyzeNumbers([]float64{1, 2, 3, 4}))
	assert.Contains(t, out, "Count: 4")
	assert.Contains(t, out, "Average: 2.50")
	assert.Equal(t, "No numeric values in depth", FormatStats("depth", nil))
}
