package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/notifeed/notification-service/internal/core/domain"
	"github.com/notifeed/notification-service/internal/core/ports"
	"github.com/notifeed/notification-service/internal/pkg/metrics"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// dummyHash is compared against when the username is unknown so that login
// latency does not reveal which usernames exist.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthOptions tunes token lifetimes and refresh rotation.
type AuthOptions struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// RefreshStore enables single-use refresh tokens when non-nil.
	RefreshStore ports.RefreshStore
}

// AuthService implements registration, login, refresh and bearer validation.
type AuthService struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	codec      ports.TokenCodec
	refresh    ports.RefreshStore
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = defaultAccessTTL
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = defaultRefreshTTL
	}
	return &AuthService{
		users:      users,
		hasher:     hasher,
		codec:      codec,
		refresh:    opts.RefreshStore,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		log:        log,
	}
}

// Register creates the account and signs the user in. Uniqueness is left to
// the store's unique index; there is no lookup before the insert.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if err := domain.ValidateCredentials(username, password); err != nil {
		metrics.AuthOperationsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		AvatarURL:    domain.DefaultAvatarURL,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			metrics.AuthOperationsTotal.WithLabelValues("register", "conflict").Inc()
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AuthOperationsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return pair, nil
}

// Login verifies the password and issues a fresh token pair. Unknown users
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if username == "" || password == "" {
		metrics.AuthOperationsTotal.WithLabelValues("login", "denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_, _ = s.hasher.Verify(ctx, password, dummyHash)
			metrics.AuthOperationsTotal.WithLabelValues("login", "denied").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: find user: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: verify password of user %d: %w", user.ID, err)
	}
	if !ok {
		metrics.AuthOperationsTotal.WithLabelValues("login", "denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.AuthOperationsTotal.WithLabelValues("login", "success").Inc()
	s.log.Debug().Int64("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

// Refresh exchanges a refresh token for a new pair. Without a RefreshStore
// the presented token stays valid until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	claims, err := s.codec.Decode(refreshToken, domain.TokenRefresh)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			metrics.AuthOperationsTotal.WithLabelValues("refresh", "expired").Inc()
			return nil, domain.ErrRefreshExpired
		}
		metrics.AuthOperationsTotal.WithLabelValues("refresh", "invalid").Inc()
		return nil, domain.ErrRefreshInvalid
	}

	if s.refresh != nil {
		found, err := s.refresh.Consume(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("refresh: consume token: %w", err)
		}
		if !found {
			metrics.AuthOperationsTotal.WithLabelValues("refresh", "reused").Inc()
			s.log.Warn().Int64("user_id", claims.Subject).Str("jti", claims.ID).Msg("refresh token reused or revoked")
			return nil, domain.ErrRefreshInvalid
		}
	}

	pair, err := s.issue(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	metrics.AuthOperationsTotal.WithLabelValues("refresh", "success").Inc()
	return pair, nil
}

// Authenticate resolves a bearer access token to the user id it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (int64, error) {
	_, span := tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()

	claims, err := s.codec.Decode(accessToken, domain.TokenAccess)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

func (s *AuthService) issue(ctx context.Context, userID int64) (*domain.TokenPair, error) {
	access, _, err := s.codec.Encode(userID, domain.TokenAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("encode access token: %w", err)
	}
	refresh, claims, err := s.codec.Encode(userID, domain.TokenRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("encode refresh token: %w", err)
	}

	if s.refresh != nil {
		if err := s.refresh.Save(ctx, claims.ID, userID, s.refreshTTL); err != nil {
			return nil, fmt.Errorf("save refresh token: %w", err)
		}
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		UserID:       userID,
	}, nil
}
