// Package crypto hashes and verifies user passwords with bcrypt.
package crypto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/notifeed/notification-service/internal/core/domain"
	"github.com/notifeed/notification-service/internal/infrastructure/queue"
	"github.com/notifeed/notification-service/internal/pkg/metrics"
)

// bcrypt only reads the first 72 bytes of its input.
const maxPasswordBytes = 72

// BcryptHasher implements ports.PasswordHasher. When a pool is set every
// hash and verify runs on one of its workers.
type BcryptHasher struct {
	cost int
	pool *queue.Pool
}

// NewBcryptHasher returns a hasher using cost, falling back to
// bcrypt.DefaultCost when cost is out of range. pool may be nil.
func NewBcryptHasher(cost int, pool *queue.Pool) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, pool: pool}
}

func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	var (
		hash []byte
		err  error
	)
	if runErr := h.run(ctx, func() {
		defer observe("hash", time.Now())
		hash, err = bcrypt.GenerateFromPassword(truncate(plaintext), h.cost)
	}); runErr != nil {
		return "", fmt.Errorf("hash password: %w", runErr)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A hash that bcrypt cannot
// parse is an error, not a mismatch.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	var (
		err      error
		compared bool
	)
	if runErr := h.run(ctx, func() {
		defer observe("verify", time.Now())
		err = bcrypt.CompareHashAndPassword([]byte(hash), truncate(plaintext))
		compared = true
	}); runErr != nil {
		return false, fmt.Errorf("verify password: %w", runErr)
	}

	switch {
	case !compared:
		return false, fmt.Errorf("verify password: comparison did not complete")
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", domain.ErrCorruptCredential, err)
	}
}

func (h *BcryptHasher) run(ctx context.Context, fn func()) error {
	if h.pool == nil {
		fn()
		return nil
	}
	return h.pool.Do(ctx, fn)
}

func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func observe(op string, start time.Time) {
	metrics.PasswordHashDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
