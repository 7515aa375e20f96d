package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("insert user: %w", domain.ErrUsernameTaken)
	}
	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// stubHasher prefixes instead of hashing and records verify calls.
type stubHasher struct {
	verifyCalls int
	hashErr     error
}

func (h *stubHasher) Hash(_ context.Context, plaintext string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plaintext, nil
}

func (h *stubHasher) Verify(_ context.Context, plaintext, hash string) (bool, error) {
	h.verifyCalls++
	return hash == "hashed:"+plaintext, nil
}

// stubCodec encodes tokens as "kind|subject|id". Tokens listed in expired
// decode with domain.ErrTokenExpired.
type stubCodec struct {
	mu      sync.Mutex
	seq     int
	expired map[string]bool
}

func newStubCodec() *stubCodec {
	return &stubCodec{expired: make(map[string]bool)}
}

func (c *stubCodec) Encode(subject int64, kind domain.TokenKind, ttl time.Duration) (string, domain.TokenClaims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	claims := domain.TokenClaims{
		Subject:   subject,
		Kind:      kind,
		ID:        "jti-" + strconv.Itoa(c.seq),
		ExpiresAt: time.Now().Add(ttl),
	}
	return fmt.Sprintf("%s|%d|%s", kind, subject, claims.ID), claims, nil
}

func (c *stubCodec) Decode(token string, kind domain.TokenKind) (domain.TokenClaims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired[token] {
		return domain.TokenClaims{}, domain.ErrTokenExpired
	}
	parts := strings.Split(token, "|")
	if len(parts) != 3 || domain.TokenKind(parts[0]) != kind {
		return domain.TokenClaims{}, domain.ErrTokenInvalid
	}
	sub, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return domain.TokenClaims{}, domain.ErrTokenInvalid
	}
	return domain.TokenClaims{Subject: sub, Kind: kind, ID: parts[2]}, nil
}

type stubRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func newStubRefreshStore() *stubRefreshStore {
	return &stubRefreshStore{tokens: make(map[string]int64)}
}

func (s *stubRefreshStore) Save(_ context.Context, tokenID string, userID int64, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenID] = userID
	return nil
}

func (s *stubRefreshStore) Consume(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[tokenID]; !ok {
		return false, nil
	}
	delete(s.tokens, tokenID)
	return true, nil
}

// stubNotificationRepo keeps notifications in memory with sequential ids.
type stubNotificationRepo struct {
	mu        sync.Mutex
	nextID    int64
	items     map[int64]domain.Notification
	users     map[int64]bool
	createErr error
	lastPage  domain.PageRequest
}

func newStubNotificationRepo(userIDs ...int64) *stubNotificationRepo {
	r := &stubNotificationRepo{
		items: make(map[int64]domain.Notification),
		users: make(map[int64]bool),
	}
	for _, id := range userIDs {
		r.users[id] = true
	}
	return r
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if !r.users[n.UserID] {
		return fmt.Errorf("insert notification: %w", domain.ErrUserNotFound)
	}
	r.nextID++
	n.ID = r.nextID
	r.items[n.ID] = *n
	return nil
}

func (r *stubNotificationRepo) List(_ context.Context, userID int64, page domain.PageRequest) ([]domain.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPage = page

	var owned []domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			owned = append(owned, n)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if page.Order == domain.OrderDesc {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].ID < owned[j].ID
	})

	offset, _ := page.Offset()
	if offset >= len(owned) {
		return nil, int64(len(owned)), nil
	}
	end := min(offset+page.PerPage, len(owned))
	return owned[offset:end], int64(len(owned)), nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, userID, notificationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[notificationID]
	if !ok || n.UserID != userID {
		return fmt.Errorf("delete notification: %w", domain.ErrNotificationNotFound)
	}
	delete(r.items, notificationID)
	return nil
}

var errBackend = errors.New("backend unavailable")
