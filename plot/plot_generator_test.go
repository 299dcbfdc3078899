package plot

import (
	"bytes"
	"strings"
	"testing"
	"time"

	argochart "github.com/pivolan/argo_explorer/chart"
	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/source"
	"github.com/pivolan/argo_explorer/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func profileBundle(t *testing.T) argochart.Bundle {
	t.Helper()
	ds := source.SyntheticProfiles(1, day)
	ids := argochart.FloatIDs(ds)[:3]
	b, err := argochart.BuildProfileChart(argochart.ProfileSeries(ds, models.Temperature, ids), models.Temperature, argochart.ProfileLayout)
	require.NoError(t, err)
	return b
}

func timeSeriesBundle(t *testing.T) argochart.Bundle {
	t.Helper()
	ds := source.Synthetic(1, day)
	s := argochart.TimeSeriesFor(ds, models.Temperature, "2901238")
	b, err := argochart.BuildTimeSeriesChart(s, argochart.TimeSeriesLayout)
	require.NoError(t, err)
	return b
}

func TestDrawProfile(t *testing.T) {
	png, err := DrawProfile(profileBundle(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))

	_, err = DrawProfile(argochart.Bundle{})
	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestDrawTimeSeries(t *testing.T) {
	b := timeSeriesBundle(t)
	require.NotNil(t, b.Trend)
	png, err := DrawTimeSeries(b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))
}

func TestDrawHistogram(t *testing.T) {
	ds := source.Synthetic(1, day)
	bins := table.Histogram(table.NumericValues(ds.Records, models.KeyTemperature), 8)
	data := NewHistogramData(bins, "Temperature distribution")
	assert.Len(t, data.generateBarValues(), 8)

	png, err := DrawPlotBar(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))

	_, err = DrawPlotBar(NewHistogramData(nil, "empty"))
	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestDrawStatusPie(t *testing.T) {
	data := NewStatusData([]table.StatusCount{
		{Status: models.StatusActive, Count: 9},
		{Status: models.StatusOffline, Count: 0},
		{Status: models.StatusMaintenance, Count: 2},
	})
	assert.Len(t, data.pieValues(), 2)

	png, err := DrawStatusPie(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))

	_, err = DrawStatusPie(NewStatusData(nil))
	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestCalculateChartDimensions(t *testing.T) {
	w, h := NewHistogramData([]table.Bin{{Start: 0, End: 1, Count: 3}}, "one").calculateChartDimensions(100)
	assert.Equal(t, 2300, w)
	assert.Equal(t, 1293, h)

	w, h = NewHistogramData(nil, "none").calculateChartDimensions(100)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestRenderTimeSeriesHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTimeSeriesHTML(timeSeriesBundle(t), &buf))
	html := buf.String()
	assert.True(t, strings.Contains(html, "echarts"))
	assert.Contains(t, html, "Trend")

	assert.ErrorIs(t, RenderTimeSeriesHTML(argochart.Bundle{}, &buf), ErrNothingToDraw)
}
