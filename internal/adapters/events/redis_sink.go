package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
	"github.com/redis/go-redis/v9"
)

// defaultStreamMaxLen caps the stream; trimming is approximate.
const defaultStreamMaxLen = 100_000

// StreamAdder is the part of the Redis client the stream sink uses.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamSink appends workflow events to a Redis stream for lightweight
// notification consumers.
type RedisStreamSink struct {
	client StreamAdder
	stream string
	maxLen int64
}

var _ portsevents.AuditSink = (*RedisStreamSink)(nil)

func NewRedisStreamSink(client StreamAdder, stream string) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream, maxLen: defaultStreamMaxLen}
}

func (r *RedisStreamSink) Record(ctx context.Context, event domain.WorkflowEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType, err)
	}

	err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"event_id":   event.EventID,
			"event_type": string(event.EventType),
			"invoice_id": event.InvoiceID,
			"data":       string(data),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append %s event to stream %s: %w", event.EventType, r.stream, err)
	}
	return nil
}
