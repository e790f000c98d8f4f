package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const extractionLedgerPrefix = "chat:extraction:"

// ExtractionLedger remembers which booking an extraction key produced, so a
// replayed extraction is answered without touching the bookings collection.
// The unique index on bookings.extractionKey stays the source of truth.
type ExtractionLedger interface {
	Lookup(ctx context.Context, key string) (bookingID string, found bool, err error)
	Remember(ctx context.Context, key, bookingID string) error
}

type RedisExtractionLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisExtractionLedger(client *redis.Client, ttl time.Duration) *RedisExtractionLedger {
	return &RedisExtractionLedger{client: client, ttl: ttl}
}

func (l *RedisExtractionLedger) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := l.client.Get(ctx, extractionLedgerPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ledger lookup: %w", err)
	}
	return id, true, nil
}

// Remember records key -> bookingID unless the key is already recorded.
func (l *RedisExtractionLedger) Remember(ctx context.Context, key, bookingID string) error {
	if err := l.client.SetNX(ctx, extractionLedgerPrefix+key, bookingID, l.ttl).Err(); err != nil {
		return fmt.Errorf("ledger remember: %w", err)
	}
	return nil
}
