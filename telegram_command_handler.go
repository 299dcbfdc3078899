package main

import (
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/argo_explorer/chart"
	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/export"
	"github.com/pivolan/argo_explorer/plot"
	"github.com/pivolan/argo_explorer/table"
)

// Chat replies show a narrow slice of the schema; /export has everything.
var chatColumns = []string{
	models.KeyFloatID,
	models.KeyOcean,
	models.KeyDate,
	models.KeyTemperature,
	models.KeySalinity,
	models.KeyStatus,
}

const maxMessageLength = 4000

func compactView(v table.View) table.View {
	var cols []models.Column
	for _, c := range v.Columns {
		for _, key := range chatColumns {
			if c.Key == key {
				cols = append(cols, c)
			}
		}
	}
	if len(cols) > 0 {
		v.Columns = cols
	}
	return v
}

func sendText(api sender, chatID int64, text string) {
	if _, err := api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func sendPre(api sender, chatID int64, text, filename string) {
	if len(text) > maxMessageLength {
		doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{Name: filename, Bytes: []byte(text)})
		api.Send(doc)
		return
	}
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+html.EscapeString(text)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (a *App) sendPage(api sender, chatID int64, v table.View) {
	sendPre(api, chatID, GenerateTable(compactView(v)), "page.txt")
}

func (a *App) handleCommand(api sender, chatID int64, command, args string) {
	ex := a.sessions.Explorer(chatKey(chatID))
	args = strings.TrimSpace(args)

	switch command {
	case "start", "help":
		sendText(api, chatID, helpText)
	case "page":
		page, err := strconv.Atoi(args)
		if err != nil {
			page = ex.View().Meta.CurrentPage
		}
		a.sendPage(api, chatID, ex.GetPage(page))
	case "filter":
		a.sendPage(api, chatID, ex.SetFilterText(args))
	case "sort":
		v, err := ex.SetSort(args)
		if err != nil {
			sendText(api, chatID, fmt.Sprintf("Unknown column %q", args))
		}
		a.sendPage(api, chatID, v)
	case "select":
		a.sendPage(api, chatID, ex.ToggleRowSelection(models.RecordID(args)))
	case "selectall":
		a.sendPage(api, chatID, ex.ToggleSelectAllVisible())
	case "clear":
		a.sendPage(api, chatID, ex.ClearSelection())
	case "export":
		a.handleExport(api, chatID, ex)
	case "exportnc":
		ds, rows := ex.ExportRows()
		if _, err := export.ScientificArray(ds, rows); err != nil {
			sendText(api, chatID, err.Error())
		}
	case "summary":
		a.handleSummaryCommand(api, chatID, ex)
	case "stats":
		column := args
		if column == "" {
			column = models.KeyTemperature
		}
		_, records := ex.Filtered()
		sendText(api, chatID, FormatStats(column, table.AnalyzeNumbers(table.NumericValues(records, column))))
	case "profile":
		a.handleProfileCommand(api, chatID, strings.Fields(args))
	case "timeseries":
		a.handleTimeSeriesCommand(api, chatID, ex, strings.Fields(args))
	case "upload":
		sendText(api, chatID, "Upload your file here: "+a.uploadLink(chatID))
	default:
		sendText(api, chatID, "Unknown command, see /help")
	}
}

func (a *App) handleExport(api sender, chatID int64, ex *table.Explorer) {
	artifact, err := a.exportCSV(ex)
	if err != nil {
		sendText(api, chatID, "Export failed: "+err.Error())
		return
	}
	doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{Name: artifact.Filename, Bytes: artifact.Body})
	if v := ex.View(); v.SelectedCount > 0 {
		doc.Caption = fmt.Sprintf("%d selected rows", v.SelectedCount)
	} else {
		doc.Caption = fmt.Sprintf("%d filtered rows", v.Meta.FilteredCount)
	}
	if _, err := api.Send(doc); err != nil {
		log.Printf("Error sending export: %v", err)
	}
}

func (a *App) handleSummaryCommand(api sender, chatID int64, ex *table.Explorer) {
	sendPre(api, chatID, GenerateSummaryTable(a.summary(ex)), "summary.txt")
	if png, err := a.histogramPNG(ex, models.KeyTemperature); err == nil {
		sendGraphVisualization(api, chatID, png, "histogram", generateVizualDescription("histogram", "temperature", ""))
	}
	if png, err := a.statusPNG(ex); err == nil {
		sendGraphVisualization(api, chatID, png, "status", generateVizualDescription("status", "", ""))
	}
}

// splitParameter treats a leading parameter name as optional.
func splitParameter(args []string) (models.Parameter, []string) {
	if len(args) > 0 {
		if p, err := models.ParseParameter(args[0]); err == nil {
			return p.ID, args[1:]
		}
	}
	return models.Temperature, args
}

func (a *App) handleProfileCommand(api sender, chatID int64, args []string) {
	param, floats := splitParameter(args)
	b, err := a.profileChart(param, floats)
	if err != nil {
		sendText(api, chatID, "No profiles selected")
		return
	}
	png, err := plot.DrawProfile(b)
	if err != nil {
		log.Printf("Error drawing profile: %v", err)
		sendText(api, chatID, "Could not draw the profile chart")
		return
	}
	detail := strings.Join(append([]string{b.Subtitle}, b.Stats...), "\n")
	sendGraphVisualization(api, chatID, png, "profile", generateVizualDescription("profile", b.Title, detail))
}

func (a *App) handleTimeSeriesCommand(api sender, chatID int64, ex *table.Explorer, args []string) {
	param, rest := splitParameter(args)
	floatID, rng := "", chart.RangeAll
	for _, arg := range rest {
		if r, err := chart.ParseTimeRange(arg); err == nil {
			rng = r
		} else if floatID == "" {
			floatID = arg
		}
	}
	b, err := a.timeSeriesChart(ex, param, floatID, rng)
	if err != nil {
		sendText(api, chatID, err.Error())
		return
	}
	png, err := plot.DrawTimeSeries(b)
	if err != nil {
		log.Printf("Error drawing time series: %v", err)
		sendText(api, chatID, "Could not draw the time series")
		return
	}
	detail := b.Subtitle
	if b.Trend != nil {
		detail += fmt.Sprintf(", trend %+.3f %s per sample", b.Trend.Trend.Slope, b.Parameter.Unit)
	}
	detail = strings.Join(append([]string{detail}, b.Stats...), "\n")
	sendGraphVisualization(api, chatID, png, "timeseries", generateVizualDescription("timeseries", b.Title, detail))
}
