package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tipbot/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DedupeStore implements ports.UpdateDeduper using Redis SET NX.
// Platforms redeliver webhooks they consider unacknowledged; the first
// delivery of a message id wins.
type DedupeStore struct {
	client *goredis.Client
	prefix string
}

// NewDedupeStore creates a new Redis-backed update deduper.
func NewDedupeStore(client *goredis.Client) *DedupeStore {
	return &DedupeStore{
		client: client,
		prefix: "inbound:",
	}
}

// CheckAndSet atomically marks (platform, messageID) as seen.
// Returns true if this is the first delivery, false for a redelivery.
func (s *DedupeStore) CheckAndSet(ctx context.Context, platform domain.Platform, messageID string, ttl time.Duration) (bool, error) {
	key := s.key(platform, messageID)
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis dedupe check: %w", err)
	}
	return result == "OK", nil
}

// Release deletes the mark so the next delivery counts as the first.
func (s *DedupeStore) Release(ctx context.Context, platform domain.Platform, messageID string) error {
	if err := s.client.Del(ctx, s.key(platform, messageID)).Err(); err != nil {
		return fmt.Errorf("redis dedupe release: %w", err)
	}
	return nil
}

func (s *DedupeStore) key(platform domain.Platform, messageID string) string {
	return s.prefix + string(platform) + ":" + messageID
}
