// Package logger — mongo_handler.go
//
// mongoHandler is an slog.Handler that asynchronously stores log records in
// a MongoDB collection, for deployments that want warnings and errors
// queryable after the fact (failed feed loads, rejected orders, persistence
// warnings). It must never slow the hot path:
//
//   - Records are enqueued into a buffered channel (non-blocking).
//   - A background goroutine drains the channel with InsertMany in batches.
//   - A full channel drops the record; logging never blocks the storefront.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 1024
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// logDocument is the shape written to MongoDB.
type logDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

type mongoHandler struct {
	col   *mongo.Collection
	min   slog.Level
	queue chan logDocument
	done  chan struct{}
	attrs []slog.Attr
}

// newMongoHandler connects to uri and writes records at or above min into
// the dukaan.logs collection.
func newMongoHandler(uri string, min slog.Level) (*mongoHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("logger/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger/mongo: ping: %w", err)
	}

	col := client.Database("dukaan").Collection("logs")
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	h := &mongoHandler{
		col:   col,
		min:   min,
		queue: make(chan logDocument, mongoQueueSize),
		done:  make(chan struct{}),
	}
	go h.drainLoop()
	return h, nil
}

func (h *mongoHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *mongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := logDocument{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}

	collect := func(a slog.Attr) {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return
		}
		doc.Attrs[a.Key] = a.Value.Any()
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	select {
	case h.queue <- doc:
	default:
		// queue full — dropped, never block
	}
	return nil
}

func (h *mongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &mongoHandler{col: h.col, min: h.min, queue: h.queue, done: h.done, attrs: merged}
}

func (h *mongoHandler) WithGroup(string) slog.Handler { return h }

func (h *mongoHandler) drainLoop() {
	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = h.col.InsertMany(ctx, batch)
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-h.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-h.done:
			for len(h.queue) > 0 {
				batch = append(batch, <-h.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending records. Safe to call multiple times.
func (h *mongoHandler) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}
