// Package config reads runtime settings from a .env file and the
// environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	IngestAddr   string   // TCP record ingest listener
	AdminAddr    string   // HTTP admin listener
	KafkaBrokers []string // empty disables event publishing
	KafkaTopic   string
	PostgresDSN  string // empty disables the snapshot store
}

// Load reads .env when present, then the environment, then defaults.
// A missing .env is not an error; the environment alone is enough.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		IngestAddr:  getenv("INGEST_ADDR", "127.0.0.1:6969"),
		AdminAddr:   getenv("ADMIN_ADDR", "127.0.0.1:8080"),
		KafkaTopic:  getenv("KAFKA_TOPIC", "transaction_applied"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
