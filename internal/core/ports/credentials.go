package ports

import (
	"context"
	"time"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify returns false on mismatch and domain.ErrCorruptCredential when
	// hash cannot be parsed.
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// TokenCodec signs and verifies self-contained tokens.
type TokenCodec interface {
	Encode(subject int64, kind domain.TokenKind, ttl time.Duration) (token string, claims domain.TokenClaims, err error)
	// Decode returns domain.ErrTokenExpired or domain.ErrTokenInvalid on failure.
	Decode(token string, kind domain.TokenKind) (domain.TokenClaims, error)
}

// RefreshStore tracks outstanding refresh tokens for single-use rotation.
type RefreshStore interface {
	Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	// Consume atomically removes tokenID and reports whether it was present.
	Consume(ctx context.Context, tokenID string) (bool, error)
}
