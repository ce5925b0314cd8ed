package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	contactKeyPrefix = "contact:"
	historyKeyPrefix = "history:"

	// contact records only gate the greeting cooldown, so letting idle
	// ones expire is harmless: expiry means first-contact semantics again
	contactTTL = 30 * 24 * time.Hour

	historyLimit = 20
)

// NewClient opens a Redis connection handle. The handle is safe for
// concurrent use and is passed into each component at construction.
func NewClient(addr, username, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       0,
	})
}

// ContactStore tracks per-user contact state: the last inbound message
// timestamp and a bounded list of recent inbound texts.
type ContactStore struct {
	rdb *redis.Client
}

func NewContactStore(rdb *redis.Client) *ContactStore {
	return &ContactStore{rdb: rdb}
}

// LastContact returns the stored last-message timestamp for userID.
// The second return is false when no record exists.
func (s *ContactStore) LastContact(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, err := s.rdb.Get(ctx, contactKeyPrefix+userID).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read contact state: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// unreadable record counts as absent; it gets overwritten anyway
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

// TouchContact records now as the user's last-message timestamp.
func (s *ContactStore) TouchContact(ctx context.Context, userID string, now time.Time) error {
	err := s.rdb.Set(ctx, contactKeyPrefix+userID, now.UTC().Format(time.RFC3339), contactTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to write contact state: %w", err)
	}
	return nil
}

// AppendHistory keeps the most recent inbound texts per user, newest first,
// capped at historyLimit entries.
func (s *ContactStore) AppendHistory(ctx context.Context, userID, text string) error {
	key := historyKeyPrefix + userID
	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, key, text)
	pipe.LTrim(ctx, key, 0, historyLimit-1)
	pipe.Expire(ctx, key, contactTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// History returns the stored recent inbound texts, newest first.
func (s *ContactStore) History(ctx context.Context, userID string) ([]string, error) {
	items, err := s.rdb.LRange(ctx, historyKeyPrefix+userID, 0, historyLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return items, nil
}
