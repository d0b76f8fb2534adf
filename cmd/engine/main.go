package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/bozkayasalihx/roinstxs/internal/batch"
	"github.com/bozkayasalihx/roinstxs/internal/config"
	"github.com/bozkayasalihx/roinstxs/internal/engine"
	"github.com/bozkayasalihx/roinstxs/internal/events/kafka"
	"github.com/bozkayasalihx/roinstxs/internal/interfaces"
	"github.com/bozkayasalihx/roinstxs/internal/server"
	"github.com/bozkayasalihx/roinstxs/internal/storage/memory"
	"github.com/bozkayasalihx/roinstxs/internal/storage/postgres"
)

func main() {
	if len(os.Args) > 1 {
		runBatch(os.Args[1])
		return
	}
	runServer()
}

// runBatch processes one file of records and writes the account summary
// to stdout. Counters and skipped records go to stderr so the summary
// stays clean.
func runBatch(path string) {
	cfg := config.Load()
	eng := engine.New()

	res, err := batch.RunFile(eng, path, os.Stdout)
	if err != nil {
		log.Fatalf("batch %s: %v", path, err)
	}
	log.Printf("batch done applied=%d rejected=%d malformed=%d",
		res.Applied, res.Rejected, res.Malformed)

	if cfg.PostgresDSN == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("bootstrap postgres: %v", err)
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	saveRun(ctx, pg, eng)
}

// runServer starts the concurrent ingestion mode: the TCP record
// listener plus the HTTP admin surface, stopped together on SIGINT or
// SIGTERM, persisting a final snapshot on the way out.
func runServer() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New()

	var pub interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		pub = kp
		log.Printf("publishing applied events to %v topic %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	var store interfaces.SnapshotStore = memory.NewMemorySnapshotStore()
	if cfg.PostgresDSN != "" {
		pg, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("bootstrap postgres: %v", err)
		}
		defer pg.Close()

		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
		store = pg
	}

	ln, err := net.Listen("tcp", cfg.IngestAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.IngestAddr, err)
	}
	log.Printf("ingest listening on %s", cfg.IngestAddr)

	admin := &http.Server{Addr: cfg.AdminAddr, Handler: server.AdminHandler(eng)}
	go func() {
		log.Printf("admin listening on %s", cfg.AdminAddr)
		if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("admin: %v", err)
		}
	}()

	if err := server.New(eng, pub).Serve(ctx, ln); err != nil {
		log.Printf("ingest: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	admin.Shutdown(shutdownCtx)

	saveRun(shutdownCtx, store, eng)
}

func saveRun(ctx context.Context, store interfaces.SnapshotStore, eng *engine.Engine) {
	runID := uuid.New().String()
	snaps := eng.Snapshot()
	if err := store.SaveSnapshots(ctx, runID, snaps); err != nil {
		log.Printf("run %s: save snapshots: %v", runID, err)
		return
	}
	log.Printf("run %s: saved %d account snapshots", runID, len(snaps))
}
