package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"reselit-marketplace-backend/logger"
)

const relayBuffer = 1024

// Relay tails the notification log and publishes each committed entry to a
// Redis stream for downstream ingestors. It tracks the last sequence it
// relayed and republishes from the log itself, so a slow consumer or a
// transient publish failure delays entries but never skips them.
type Relay struct {
	client  *redis.Client
	stream  string
	log     *Log
	lastSeq uint64
}

func NewRelay(client *redis.Client, stream string, log *Log) *Relay {
	return &Relay{
		client: client,
		stream: stream,
		log:    log,
	}
}

// Run relays until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ch, cancel := r.log.Subscribe(relayBuffer)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			r.drain(ctx)
		}
	}
}

// drain publishes every entry past the relay's high-water mark, stopping at
// the first publish failure so the failed entry is retried on the next wake.
func (r *Relay) drain(ctx context.Context) {
	for _, n := range r.log.Entries(r.lastSeq) {
		if err := r.publish(n); err != nil {
			logger.Errorf(ctx, "relay: publishing seq %d to stream %s: %+v", n.Seq, r.stream, err)
			return
		}
		r.lastSeq = n.Seq
	}
}

func (r *Relay) publish(n Notification) error {
	values := map[string]interface{}{
		"seq":         n.Seq,
		"kind":        string(n.Kind),
		"event_id":    n.EventID,
		"token_index": n.TokenIndex,
		"actor":       n.Actor,
		"amount":      n.Amount,
		"at":          n.At.Format(time.RFC3339Nano),
	}
	if n.Counterparty != "" {
		values["counterparty"] = n.Counterparty
	}

	if err := r.client.XAdd(&redis.XAddArgs{Stream: r.stream, Values: values}).Err(); err != nil {
		return fmt.Errorf("publish: xadd seq %d: %w", n.Seq, err)
	}
	return nil
}
