package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const helpText = `ARGO float explorer 🌊

Send a CSV file (plain, gzip, lz4 or zip) with float measurements, or use the demo data that is already loaded.

Commands:
/page <n> - show a page of the table
/filter <text> - search every column, empty text clears
/sort <column> - sort, repeat to flip the direction
/select <id> - toggle a row
/selectall - toggle every row matching the filter
/clear - clear the selection
/export - CSV of the selection, or of the filtered rows
/summary - headline numbers and charts
/stats <column> - statistics of a numeric column
/profile [parameter] [float ids...] - depth profiles
/timeseries [parameter] [float id] [1week|1month|3months|6months|1year|all] - parameter over time
/upload - link for uploading large files`

func (a *App) runBot(bot *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Printf("Error getting updates: %v", err)
		return
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Document != nil {
			go a.handleDocument(bot, update.Message)
		} else if update.Message.Text != "" {
			go a.handleText(bot, update.Message)
		}
	}
}

func (a *App) handleText(api sender, message *tgbotapi.Message) {
	if message.IsCommand() {
		a.handleCommand(api, message.Chat.ID, message.Command(), message.CommandArguments())
		return
	}
	a.handleCommand(api, message.Chat.ID, "filter", message.Text)
}

func (a *App) uploadLink(chatID int64) string {
	return fmt.Sprintf("%s/?id=%s", a.cfg.PublicURL, a.sessions.NewUploadToken(chatID))
}

func (a *App) handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		bot.Send(tgbotapi.NewMessage(chatID, "Error on upload file, if file too big try another method, upload by this link: "+a.uploadLink(chatID)))
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	data, err := a.readUpload(resp.Body)
	if errors.Is(err, ErrFileTooLarge) {
		bot.Send(tgbotapi.NewMessage(chatID, "Could not load the file: "+err.Error()))
		return
	}
	if err != nil {
		log.Printf("Error reading file: %v", err)
		return
	}
	v, err := a.loadUpload(a.sessions.Explorer(chatKey(chatID)), message.Document.FileName, data)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "Could not load the file: "+err.Error()))
		return
	}
	a.sendPage(bot, chatID, v)
}
