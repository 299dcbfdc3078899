package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// sender is the part of the bot API the handlers use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram recompresses large photos badly, bigger images go as files.
const maxSizePhoto = 150000

// sendGraphVisualization sends a rendered chart with its caption.
func sendGraphVisualization(api sender, chatID int64, graph []byte, visualType, caption string) {
	pngFile := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s_%s.png", visualType, time.Now().Format("20060102-150405")),
		Bytes: graph,
	}
	var msg tgbotapi.Chattable
	if len(graph) < maxSizePhoto {
		photo := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photo.Caption = caption
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, pngFile)
		doc.Caption = caption
		msg = doc
	}
	if _, err := api.Send(msg); err != nil {
		log.Printf("Error sending %s chart: %v", visualType, err)
		api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Could not send the %s chart: %v", visualType, err)))
	}
}

func generateVizualDescription(visualType, subject, detail string) string {
	switch visualType {
	case "profile":
		return fmt.Sprintf("Depth profiles: %s\n%s", subject, detail)
	case "timeseries":
		return fmt.Sprintf("Time series: %s\n%s", subject, detail)
	case "histogram":
		return fmt.Sprintf("Distribution of %s over the filtered rows", subject)
	case "status":
		return "Float status breakdown"
	}
	return subject
}
