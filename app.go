package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pivolan/argo_explorer/chart"
	"github.com/pivolan/argo_explorer/config"
	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/export"
	"github.com/pivolan/argo_explorer/plot"
	"github.com/pivolan/argo_explorer/source"
	"github.com/pivolan/argo_explorer/table"
)

const (
	defaultProfileFloats = 3
	histogramBins        = 8
)

var (
	ErrUnknownFloat = errors.New("unknown float")
	ErrNotNumeric   = errors.New("not a numeric column")
	ErrFileTooLarge = errors.New("file is too large")
)

// App is the shell around the explorers: it turns web requests and chat
// commands into explorer transitions and renders the results.
type App struct {
	cfg      *config.Config
	sessions *Sessions
	profiles *models.Dataset
	bot      sender
}

func NewApp(cfg *config.Config, ds, profiles *models.Dataset) *App {
	return &App{
		cfg:      cfg,
		sessions: NewSessions(ds, cfg.PageSize),
		profiles: profiles,
	}
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

func parseParameter(s string) (models.Parameter, error) {
	if strings.TrimSpace(s) == "" {
		return models.Temperature, nil
	}
	info, err := models.ParseParameter(s)
	return info.ID, err
}

func (a *App) exportCSV(ex *table.Explorer) (export.Artifact, error) {
	ds, rows := ex.ExportRows()
	artifact, err := export.CSVArtifact(ds, rows)
	if err != nil {
		return artifact, err
	}
	if a.cfg.ExportName != "" {
		artifact.Filename = export.SuggestedFilename(a.cfg.ExportName, ".csv")
	}
	return artifact, nil
}

// profileFloats falls back to the first floats of the profile dataset.
func (a *App) profileFloats(floats []string) []string {
	if len(floats) > 0 {
		return floats
	}
	ids := chart.FloatIDs(a.profiles)
	if len(ids) > defaultProfileFloats {
		ids = ids[:defaultProfileFloats]
	}
	return ids
}

func (a *App) profileChart(param models.Parameter, floats []string) (chart.Bundle, error) {
	series := chart.ProfileSeries(a.profiles, param, a.profileFloats(floats))
	return chart.BuildProfileChart(series, param, chart.ProfileLayout)
}

func (a *App) profilePNG(param models.Parameter, floats []string) ([]byte, error) {
	b, err := a.profileChart(param, floats)
	if err != nil {
		return nil, err
	}
	return plot.DrawProfile(b)
}

// timeSeriesChart plots one float of the explorer's dataset over the given
// range, the first float when floatID is empty.
func (a *App) timeSeriesChart(ex *table.Explorer, param models.Parameter, floatID string, rng chart.TimeRange) (chart.Bundle, error) {
	ds := ex.Dataset()
	if floatID == "" {
		ids := chart.FloatIDs(ds)
		if len(ids) == 0 {
			return chart.Bundle{}, chart.ErrNoPoints
		}
		floatID = ids[0]
	}
	s := chart.TimeSeriesFor(ds, param, floatID)
	if len(s.Points) == 0 {
		return chart.Bundle{}, fmt.Errorf("%w: %s", ErrUnknownFloat, floatID)
	}
	b, err := chart.BuildTimeSeriesChart(chart.WithinRange(s, rng), chart.TimeSeriesLayout)
	if err != nil {
		return b, err
	}
	b.Stats = append(b.Stats, "Time Range: "+rng.Label())
	return b, nil
}

func (a *App) histogramPNG(ex *table.Explorer, column string) ([]byte, error) {
	if column == "" {
		column = models.KeyTemperature
	}
	ds, records := ex.Filtered()
	c, ok := ds.Column(column)
	if !ok || c.Type != models.TypeNumber {
		return nil, fmt.Errorf("%w: %s", ErrNotNumeric, column)
	}
	bins := table.Histogram(table.NumericValues(records, column), histogramBins)
	return plot.DrawPlotBar(plot.NewHistogramData(bins, c.Label+" distribution"))
}

func (a *App) statusPNG(ex *table.Explorer) ([]byte, error) {
	_, records := ex.Filtered()
	return plot.DrawStatusPie(plot.NewStatusData(table.StatusCounts(records)))
}

func (a *App) summary(ex *table.Explorer) table.Summary {
	ds, records := ex.Filtered()
	return table.Summarize(records, ds.Columns)
}

func (a *App) uploadLimit() int64 {
	if a.cfg.MaxUploadBytes > 0 {
		return a.cfg.MaxUploadBytes
	}
	return maxUploadBytes
}

// readUpload reads an uploaded file whole. Files over the upload limit are
// rejected rather than cut.
func (a *App) readUpload(r io.Reader) ([]byte, error) {
	limit := a.uploadLimit()
	data, err := source.ReadAllCapped(r, limit)
	if errors.Is(err, source.ErrTooLarge) {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	return data, err
}

// loadUpload replaces the dataset of the explorer with an uploaded CSV,
// optionally compressed.
func (a *App) loadUpload(ex *table.Explorer, filename string, data []byte) (table.View, error) {
	name, r, err := source.Decompress(filename, data, a.cfg.MaxUnpackedBytes)
	if err != nil {
		return table.View{}, err
	}
	ds, err := source.LoadCSV(r, name, models.ArgoColumns())
	if errors.Is(err, source.ErrTooLarge) {
		return table.View{}, fmt.Errorf("%w: unpacked content over %d bytes", ErrFileTooLarge, a.cfg.MaxUnpackedBytes)
	}
	if err != nil {
		return table.View{}, err
	}
	return ex.ReplaceDataset(ds), nil
}
