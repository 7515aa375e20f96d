package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshStore tracks live refresh tokens so each can be exchanged once.
// Key format: refresh_token:<jti>, value is the owning user id.
type RefreshStore struct {
	client *redis.Client
}

// NewRefreshStore creates a RefreshStore wrapping the given Redis client.
func NewRefreshStore(client *redis.Client) *RefreshStore {
	return &RefreshStore{client: client}
}

// Save records tokenID as live until ttl elapses.
func (s *RefreshStore) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume atomically removes tokenID and reports whether it was live.
func (s *RefreshStore) Consume(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.GetDel(ctx, s.key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume refresh token: %w", err)
	}
	return true, nil
}

func (s *RefreshStore) key(tokenID string) string {
	return "refresh_token:" + tokenID
}
