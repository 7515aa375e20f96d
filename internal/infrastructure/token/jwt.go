// Package token signs and verifies the service's JWT access and refresh tokens.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/notifeed/notification-service/internal/core/domain"
)

type claims struct {
	Type domain.TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// Codec implements ports.TokenCodec with a shared HMAC secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a codec for an HMAC algorithm name such as "HS256".
func NewCodec(secret, algorithm string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: empty secret")
	}
	method := jwt.GetSigningMethod(strings.ToUpper(algorithm))
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: unsupported algorithm %q", algorithm)
	}

	c := &Codec{secret: []byte(secret), method: method, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Encode issues a token of the given kind for subject, valid for ttl.
func (c *Codec) Encode(subject int64, kind domain.TokenKind, ttl time.Duration) (string, domain.TokenClaims, error) {
	now := c.now()
	cl := claims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, cl).SignedString(c.secret)
	if err != nil {
		return "", domain.TokenClaims{}, fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, domain.TokenClaims{
		Subject:   subject,
		Kind:      kind,
		ID:        cl.ID,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// Decode verifies signature, algorithm, expiry and kind. Expired tokens
// yield domain.ErrTokenExpired, everything else domain.ErrTokenInvalid.
func (c *Codec) Decode(token string, kind domain.TokenKind) (domain.TokenClaims, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(token, &cl, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenClaims{}, domain.ErrTokenExpired
		}
		return domain.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	if cl.Type != kind {
		return domain.TokenClaims{}, fmt.Errorf("%w: expected %s token, got %q", domain.ErrTokenInvalid, kind, cl.Type)
	}
	subject, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil {
		return domain.TokenClaims{}, fmt.Errorf("%w: subject %q", domain.ErrTokenInvalid, cl.Subject)
	}

	return domain.TokenClaims{
		Subject:   subject,
		Kind:      cl.Type,
		ID:        cl.ID,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}
