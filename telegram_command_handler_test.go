package main

import (
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastText(t *testing.T, bot *fakeSender) string {
	t.Helper()
	texts := bot.texts()
	require.NotEmpty(t, texts)
	return texts[len(texts)-1]
}

func TestFilterCommand(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 1, "filter", " Arctic ")

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "Arctic Ocean")
	assert.NotContains(t, msg.Text, "Indian Ocean")
	assert.Contains(t, msg.Text, "filtered from")
}

func TestPlainTextFilters(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleText(bot, &tgbotapi.Message{Text: "Southern", Chat: &tgbotapi.Chat{ID: 5}})
	assert.Equal(t, "Southern", app.sessions.Explorer(chatKey(5)).State().Filter)
}

func TestSortCommandUnknownColumn(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 1, "sort", "bogus")
	require.Len(t, bot.sent, 2)
	assert.Equal(t, `Unknown column "bogus"`, bot.texts()[0])
	assert.False(t, app.sessions.Explorer(chatKey(1)).State().Sort.Active())
}

func TestSelectAndExportCommands(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 1, "select", "2")
	app.handleCommand(bot, 1, "select", "1")
	app.handleCommand(bot, 1, "export", "")

	doc, ok := bot.sent[len(bot.sent)-1].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "argo_float_measurements.csv", file.Name)
	assert.Equal(t, "2 selected rows", doc.Caption)

	lines := strings.Split(string(file.Bytes), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2901234,"), "dataset order, not click order")

	app.handleCommand(bot, 1, "clear", "")
	assert.Zero(t, app.sessions.Explorer(chatKey(1)).View().SelectedCount)
}

func TestExportNameOverride(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.cfg.ExportName = "Indian Ocean floats"
	app.handleCommand(bot, 1, "export", "")
	doc := bot.sent[0].(tgbotapi.DocumentConfig)
	assert.Equal(t, "indian_ocean_floats.csv", doc.File.(tgbotapi.FileBytes).Name)
}

func TestScientificExportCommand(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 1, "exportnc", "")
	assert.Contains(t, lastText(t, bot), "not supported")
}

func chartFile(t *testing.T, c tgbotapi.Chattable) (tgbotapi.FileBytes, string) {
	t.Helper()
	switch m := c.(type) {
	case tgbotapi.PhotoConfig:
		return m.File.(tgbotapi.FileBytes), m.Caption
	case tgbotapi.DocumentConfig:
		return m.File.(tgbotapi.FileBytes), m.Caption
	}
	t.Fatalf("unexpected message %T", c)
	return tgbotapi.FileBytes{}, ""
}

func TestProfileCommand(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 1, "profile", "salinity 2901240 2901241")
	require.Len(t, bot.sent, 1)
	file, caption := chartFile(t, bot.sent[0])
	assert.True(t, strings.HasPrefix(file.Name, "profile_"))
	assert.Contains(t, caption, "Salinity vs Depth")
	assert.Contains(t, caption, "2 profiles from 2 oceans")
	assert.Contains(t, caption, "Max Depth: 1980 m")
	assert.Contains(t, caption, "Min Value: ")

	bot.sent = nil
	app.handleCommand(bot, 1, "profile", "nope")
	assert.Equal(t, "No profiles selected", lastText(t, bot))
}

func TestTimeSeriesCommand(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 1, "timeseries", "2901238")
	require.Len(t, bot.sent, 1)
	_, caption := chartFile(t, bot.sent[0])
	assert.Contains(t, caption, "Temperature Time Series - Float 2901238")
	assert.Contains(t, caption, "trend")
	assert.Contains(t, caption, "Std Dev: ")
	assert.Contains(t, caption, "Time Range: All")

	bot.sent = nil
	app.handleCommand(bot, 1, "timeseries", "salinity 2901238 1week")
	require.Len(t, bot.sent, 1)
	_, caption = chartFile(t, bot.sent[0])
	assert.Contains(t, caption, "Salinity Time Series - Float 2901238")
	assert.Contains(t, caption, "4 measurements")
	assert.Contains(t, caption, "Time Range: 1 Week")

	bot.sent = nil
	app.handleCommand(bot, 1, "timeseries", "oxygen 123")
	assert.Equal(t, "unknown float: 123", lastText(t, bot))
}

func TestSummaryAndStatsCommands(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 1, "summary", "")
	require.Len(t, bot.sent, 3)
	assert.Contains(t, bot.texts()[0], "Avg temperature")

	bot.sent = nil
	app.handleCommand(bot, 1, "stats", models.KeySalinity)
	assert.Contains(t, lastText(t, bot), "📊 salinity")

	app.handleCommand(bot, 1, "stats", models.KeyOcean)
	assert.Equal(t, "No numeric values in ocean", lastText(t, bot))
}

func TestUploadAndHelpCommands(t *testing.T) {
	app, bot := testApp(t), &fakeSender{}
	app.handleCommand(bot, 9, "upload", "")
	text := lastText(t, bot)
	require.Contains(t, text, "http://test/?id=")

	token := text[strings.Index(text, "id=")+3:]
	chatID, ok := app.sessions.ClaimUploadToken(token)
	assert.True(t, ok)
	assert.Equal(t, int64(9), chatID)
	_, ok = app.sessions.ClaimUploadToken(token)
	assert.False(t, ok)

	app.handleCommand(bot, 9, "start", "")
	assert.Equal(t, helpText, lastText(t, bot))
	app.handleCommand(bot, 9, "dance", "")
	assert.Equal(t, "Unknown command, see /help", lastText(t, bot))
}

func TestSessionsExpire(t *testing.T) {
	app := testApp(t)
	now := testDay
	app.sessions.now = func() time.Time { return now }

	ex := app.sessions.Explorer("old")
	ex.SetFilterText("Arctic")
	token := app.sessions.NewUploadToken(3)

	now = now.Add(2 * time.Hour)
	app.sessions.Explorer("fresh")
	assert.Equal(t, 1, app.sessions.Expire(now.Add(-time.Hour)))

	assert.Empty(t, app.sessions.Explorer("old").State().Filter)
	_, ok := app.sessions.ClaimUploadToken(token)
	assert.False(t, ok)
}
