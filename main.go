package main

import (
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/argo_explorer/config"
	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/source"
)

const sessionTTL = time.Hour

func main() {
	log.Println("started")
	cfg := config.GetConfig()

	ds, err := loadDataset(cfg)
	if err != nil {
		log.Fatalln("cannot load dataset", err)
	}
	log.Printf("loaded %q: %d records", ds.Name, ds.Len())

	app := NewApp(cfg, ds, source.SyntheticProfiles(cfg.SyntheticSeed, time.Now()))

	if cfg.TgToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TgToken)
		if err != nil {
			log.Fatal("tg error", err)
		}
		log.Printf("Authorized on account %s", bot.Self.UserName)
		app.bot = bot
		go app.runBot(bot)
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			if n := app.sessions.Expire(time.Now().Add(-sessionTTL)); n > 0 {
				log.Printf("expired %d sessions", n)
			}
		}
	}()

	log.Printf("listen on: %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, app.Routes()); err != nil {
		log.Fatalln("Error starting server:", err)
	}
}

// loadDataset picks the first configured source: a CSV file, a database
// table, or generated demo data.
func loadDataset(cfg *config.Config) (*models.Dataset, error) {
	switch {
	case cfg.DataFile != "":
		name, r, err := source.Open(cfg.DataFile, cfg.MaxUnpackedBytes)
		if err != nil {
			return nil, err
		}
		return source.LoadCSV(r, name, models.ArgoColumns())
	case cfg.DbDsn != "" && cfg.DbTable != "":
		db, err := source.Connect(cfg.DbDsn)
		if err != nil {
			return nil, err
		}
		return source.LoadTable(db, cfg.DbTable, nil, 0)
	}
	return source.Synthetic(cfg.SyntheticSeed, time.Now()), nil
}
