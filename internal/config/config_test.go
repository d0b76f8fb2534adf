package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"INGEST_ADDR", "ADMIN_ADDR", "KAFKA_BROKERS", "KAFKA_TOPIC", "POSTGRES_DSN"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.IngestAddr != "127.0.0.1:6969" {
		t.Errorf("IngestAddr = %q", cfg.IngestAddr)
	}
	if cfg.AdminAddr != "127.0.0.1:8080" {
		t.Errorf("AdminAddr = %q", cfg.AdminAddr)
	}
	if cfg.KafkaTopic != "transaction_applied" {
		t.Errorf("KafkaTopic = %q", cfg.KafkaTopic)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("KafkaBrokers = %v, want none", cfg.KafkaBrokers)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("PostgresDSN = %q, want empty", cfg.PostgresDSN)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INGEST_ADDR", "0.0.0.0:7000")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "applied")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/txs")

	cfg := Load()
	if cfg.IngestAddr != "0.0.0.0:7000" {
		t.Errorf("IngestAddr = %q", cfg.IngestAddr)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "k1:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaTopic != "applied" {
		t.Errorf("KafkaTopic = %q", cfg.KafkaTopic)
	}
	if cfg.PostgresDSN != "postgres://localhost/txs" {
		t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
	}
}
