// Package server is the concurrent ingestion mode: a TCP listener where
// every accepted connection streams line-delimited records into the
// shared engine, plus an HTTP surface for snapshot queries.
package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bozkayasalihx/roinstxs/internal/decode"
	"github.com/bozkayasalihx/roinstxs/internal/engine"
	"github.com/bozkayasalihx/roinstxs/internal/interfaces"
	"github.com/bozkayasalihx/roinstxs/internal/models"
	"github.com/bozkayasalihx/roinstxs/internal/models/events"
)

type Server struct {
	engine    *engine.Engine
	publisher interfaces.EventPublisher // nil disables event publishing
}

func New(eng *engine.Engine, pub interfaces.EventPublisher) *Server {
	return &Server{engine: eng, publisher: pub}
}

// Serve accepts connections until ctx is cancelled, then waits for every
// in-flight connection to drain. Each connection runs in its own
// goroutine; the engine serializes per client, so connections never
// block each other except when mutating the same client.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// handleConn drains one connection. A malformed line or a rejected
// record is logged and skipped; a read failure or disconnect ends the
// connection, discarding any partially received line without touching
// the engine.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	connID := uuid.New().String()
	log.Printf("conn %s: accepted %s", connID, conn.RemoteAddr())

	var applied, rejected, malformed int
	dec := decode.NewStream(conn)
	for {
		rec, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var lineErr *decode.LineError
		if errors.As(err, &lineErr) {
			log.Printf("conn %s: skipping malformed %v", connID, lineErr)
			malformed++
			continue
		}
		if err != nil {
			log.Printf("conn %s: read: %v", connID, err)
			break
		}

		if err := s.engine.Apply(rec); err != nil {
			log.Printf("conn %s: rejected %v", connID, err)
			rejected++
			continue
		}
		applied++
		s.publishApplied(ctx, rec)
	}

	log.Printf("conn %s: closed applied=%d rejected=%d malformed=%d",
		connID, applied, rejected, malformed)
}

func (s *Server) publishApplied(ctx context.Context, rec models.Record) {
	if s.publisher == nil {
		return
	}

	ev := events.TransactionApplied{
		EventID:    uuid.New().String(),
		Kind:       rec.Kind.String(),
		TxID:       rec.TxID,
		ClientID:   rec.ClientID,
		Amount:     rec.Amount,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("conn event publish: %v", err)
	}
}
