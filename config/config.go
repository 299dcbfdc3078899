package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr    string
	PublicURL     string
	TgToken       string
	DbDsn         string
	DbTable       string
	DataFile      string
	PageSize      int
	ExportName    string
	SyntheticSeed int64

	// MaxUploadBytes caps an uploaded file, MaxUnpackedBytes its content
	// once decompressed.
	MaxUploadBytes   int64
	MaxUnpackedBytes int64
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process-wide configuration. A missing .env file
// is fine; the environment and defaults are used instead.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env loaded: %v", err)
		}
		config = FromEnv()
	})
	return config
}

func FromEnv() *Config {
	return &Config{
		ListenAddr:    getString("LISTEN_ADDR", ":8005"),
		PublicURL:     getString("PUBLIC_URL", "http://localhost:8005"),
		TgToken:       os.Getenv("TG_TOKEN"),
		DbDsn:         os.Getenv("DB_DSN"),
		DbTable:       os.Getenv("DB_TABLE"),
		DataFile:      os.Getenv("DATA_FILE"),
		PageSize:      int(getInt("PAGE_SIZE", 10)),
		ExportName:    os.Getenv("EXPORT_NAME"),
		SyntheticSeed: getInt("SYNTHETIC_SEED", 1),

		MaxUploadBytes:   getInt("MAX_UPLOAD_BYTES", 32<<20),
		MaxUnpackedBytes: getInt("MAX_UNPACKED_BYTES", 256<<20),
	}
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("bad %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
