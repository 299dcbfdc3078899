package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pivolan/argo_explorer/chart"
	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/export"
	"github.com/pivolan/argo_explorer/plot"
	"github.com/pivolan/argo_explorer/table"
	uuid "github.com/satori/go.uuid"
)

const (
	sessionCookie  = "argo_session"
	maxUploadBytes = 32 << 20
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>ARGO float explorer</title></head>
<body>
<h1>{{.View.DatasetName}}</h1>
<form action="/" method="get">
  <input type="text" name="q" value="{{.View.Filter}}" placeholder="Search floats, oceans, dates...">
  <button type="submit">Filter</button>
</form>
<pre>{{.Table}}</pre>
<p>
  {{if gt .View.Meta.CurrentPage 1}}<a href="/?page={{.Prev}}">Previous</a>{{end}}
  {{if lt .View.Meta.CurrentPage .View.Meta.TotalPages}}<a href="/?page={{.Next}}">Next</a>{{end}}
  <a href="/export.csv">Export CSV</a>
</p>
<p>
  <img src="/chart/profile.png" alt="profiles">
  <img src="/chart/timeseries.png" alt="time series">
  <a href="/chart/timeseries.html">interactive</a>
</p>
<form action="/upload" method="post" enctype="multipart/form-data">
  <input type="hidden" name="id" value="{{.Token}}">
  <input type="file" name="file">
  <button type="submit">Upload CSV</button>
</form>
</body>
</html>
`))

// Routes maps every request to one explorer transition followed by a
// render of the returned view.
func (a *App) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleIndex)
	mux.HandleFunc("/table", a.handleTable)
	mux.HandleFunc("/state", a.handleState)
	mux.HandleFunc("/summary", a.handleSummary)
	mux.HandleFunc("/sort", a.handleSort)
	mux.HandleFunc("/filter", a.handleFilter)
	mux.HandleFunc("/page", a.handlePage)
	mux.HandleFunc("/select", a.handleSelect)
	mux.HandleFunc("/select-all", a.handleSelectAll)
	mux.HandleFunc("/clear", a.handleClear)
	mux.HandleFunc("/export.csv", a.handleExportCSV)
	mux.HandleFunc("/export.nc", a.handleExportScientific)
	mux.HandleFunc("/chart/profile.png", a.handleProfilePNG)
	mux.HandleFunc("/chart/timeseries.png", a.handleTimeSeriesPNG)
	mux.HandleFunc("/chart/timeseries.html", a.handleTimeSeriesHTML)
	mux.HandleFunc("/chart/timeseries.json", a.handleTimeSeriesStats)
	mux.HandleFunc("/chart/histogram.png", a.handleHistogramPNG)
	mux.HandleFunc("/chart/status.png", a.handleStatusPNG)
	mux.HandleFunc("/upload", a.handleUpload)
	return mux
}

// explorer finds the visitor's explorer by cookie, starting a new session
// when there is none.
func (a *App) explorer(w http.ResponseWriter, r *http.Request) *table.Explorer {
	key := ""
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		key = c.Value
	} else {
		key = uuid.NewV4().String()
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: key, Path: "/", HttpOnly: true})
	}
	return a.sessions.Explorer(key)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func chartErrorStatus(err error) int {
	switch {
	case errors.Is(err, chart.ErrNoPoints), errors.Is(err, plot.ErrNothingToDraw),
		errors.Is(err, ErrUnknownFloat), errors.Is(err, ErrNotNumeric):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnknownParameter), errors.Is(err, chart.ErrUnknownTimeRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writePNG(w http.ResponseWriter, png []byte, err error) {
	if err != nil {
		writeError(w, chartErrorStatus(err), err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func intParam(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	return n, err == nil
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ex := a.explorer(w, r)
	v := ex.View()
	if q, ok := r.URL.Query()["q"]; ok {
		v = ex.SetFilterText(q[0])
	}
	if page, ok := intParam(r, "page"); ok {
		v = ex.GetPage(page)
	}
	err := indexTemplate.Execute(w, map[string]interface{}{
		"View":  v,
		"Table": GenerateTable(v),
		"Prev":  v.Meta.CurrentPage - 1,
		"Next":  v.Meta.CurrentPage + 1,
		"Token": r.URL.Query().Get("id"),
	})
	if err != nil {
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func (a *App) handleTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, GenerateTable(a.explorer(w, r).View()))
}

func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.explorer(w, r).View())
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.summary(a.explorer(w, r)))
}

// handleSort leaves the view untouched for a column outside the schema.
func (a *App) handleSort(w http.ResponseWriter, r *http.Request) {
	v, err := a.explorer(w, r).SetSort(r.URL.Query().Get("column"))
	if err != nil {
		log.Printf("sort ignored: %v", err)
	}
	writeJSON(w, http.StatusOK, v)
}

func (a *App) handleFilter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.explorer(w, r).SetFilterText(r.URL.Query().Get("q")))
}

func (a *App) handlePage(w http.ResponseWriter, r *http.Request) {
	ex := a.explorer(w, r)
	v := ex.View()
	if size, ok := intParam(r, "size"); ok {
		v = ex.SetPageSize(size)
	}
	if page, ok := intParam(r, "n"); ok {
		v = ex.GetPage(page)
	}
	writeJSON(w, http.StatusOK, v)
}

func (a *App) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	writeJSON(w, http.StatusOK, a.explorer(w, r).ToggleRowSelection(models.RecordID(id)))
}

func (a *App) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.explorer(w, r).ToggleSelectAllVisible())
}

func (a *App) handleClear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.explorer(w, r).ClearSelection())
}

func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	artifact, err := a.exportCSV(a.explorer(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Write(artifact.Body)
}

func (a *App) handleExportScientific(w http.ResponseWriter, r *http.Request) {
	ds, rows := a.explorer(w, r).ExportRows()
	if _, err := export.ScientificArray(ds, rows); err != nil {
		writeError(w, http.StatusNotImplemented, err)
	}
}

func (a *App) handleProfilePNG(w http.ResponseWriter, r *http.Request) {
	param, err := parseParameter(r.URL.Query().Get("param"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var floats []string
	if f := r.URL.Query().Get("floats"); f != "" {
		floats = strings.Split(f, ",")
	}
	png, err := a.profilePNG(param, floats)
	writePNG(w, png, err)
}

func (a *App) timeSeriesFromRequest(w http.ResponseWriter, r *http.Request) (chart.Bundle, error) {
	param, err := parseParameter(r.URL.Query().Get("param"))
	if err != nil {
		return chart.Bundle{}, err
	}
	rng, err := chart.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		return chart.Bundle{}, err
	}
	return a.timeSeriesChart(a.explorer(w, r), param, r.URL.Query().Get("float"), rng)
}

type timeSeriesStatsJSON struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Stats    []string `json:"stats"`
	Slope    *float64 `json:"trendSlope,omitempty"`
}

func (a *App) handleTimeSeriesStats(w http.ResponseWriter, r *http.Request) {
	b, err := a.timeSeriesFromRequest(w, r)
	if err != nil {
		writeError(w, chartErrorStatus(err), err)
		return
	}
	out := timeSeriesStatsJSON{Title: b.Title, Subtitle: b.Subtitle, Stats: b.Stats}
	if b.Trend != nil {
		out.Slope = &b.Trend.Trend.Slope
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleTimeSeriesPNG(w http.ResponseWriter, r *http.Request) {
	b, err := a.timeSeriesFromRequest(w, r)
	if err != nil {
		writePNG(w, nil, err)
		return
	}
	png, err := plot.DrawTimeSeries(b)
	writePNG(w, png, err)
}

func (a *App) handleTimeSeriesHTML(w http.ResponseWriter, r *http.Request) {
	b, err := a.timeSeriesFromRequest(w, r)
	if err != nil {
		writePNG(w, nil, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := plot.RenderTimeSeriesHTML(b, w); err != nil {
		log.Printf("Error rendering time series page: %v", err)
	}
}

func (a *App) handleHistogramPNG(w http.ResponseWriter, r *http.Request) {
	png, err := a.histogramPNG(a.explorer(w, r), r.URL.Query().Get("column"))
	writePNG(w, png, err)
}

func (a *App) handleStatusPNG(w http.ResponseWriter, r *http.Request) {
	png, err := a.statusPNG(a.explorer(w, r))
	writePNG(w, png, err)
}

// handleUpload loads a CSV into the visitor's session. With the id of a
// chat upload link the chat session gets the dataset too.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()
	data, err := a.readUpload(file)
	if errors.Is(err, ErrFileTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	if err != nil {
		http.Error(w, "Error reading file", http.StatusBadRequest)
		return
	}

	v, err := a.loadUpload(a.explorer(w, r), header.Filename, data)
	if errors.Is(err, ErrFileTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if chatID, ok := a.sessions.ClaimUploadToken(r.FormValue("id")); ok {
		chatView, err := a.loadUpload(a.sessions.Explorer(chatKey(chatID)), header.Filename, data)
		if err == nil && a.bot != nil {
			a.sendPage(a.bot, chatID, chatView)
		}
	}
	writeJSON(w, http.StatusOK, v)
}
