package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamName is the redis stream carrying critical-case row events.
const StreamName = "civiguard.critical"

// Feed is a live change-feed connection. Open starts delivering events to
// the handler until Close is called. One Feed carries at most one open
// connection at a time.
type Feed interface {
	Open(handler func(Event)) error
	Close() error
}

// StreamFeed reads critical-case events from a redis stream. Reconnection
// and backoff are the redis client's concern; events emitted while a read
// fails are not replayed.
type StreamFeed struct {
	rdb *redis.Client

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewStreamFeed(rdb *redis.Client) *StreamFeed {
	return &StreamFeed{rdb: rdb}
}

func (f *StreamFeed) Open(handler func(Event)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	go f.listen(ctx, handler)
	return nil
}

func (f *StreamFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return nil
}

func (f *StreamFeed) listen(ctx context.Context, handler func(Event)) {
	// Start from new entries only; history is never replayed.
	lastID := "$"
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := f.rdb.XRead(ctx, &redis.XReadArgs{
			Streams: []string{StreamName, lastID},
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if err != redis.Nil {
				log.Printf("notify: stream read: %v", err)
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				kind := EventInsert
				if k, ok := msg.Values["kind"].(string); ok && k != "" {
					kind = k
				}
				handler(Event{Kind: kind, Values: msg.Values})
			}
		}
	}
}
