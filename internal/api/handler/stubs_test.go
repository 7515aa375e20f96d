package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/notifeed/notification-service/internal/api/middleware"
	"github.com/notifeed/notification-service/internal/core/domain"
	"github.com/notifeed/notification-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, username, password string) (*domain.TokenPair, error)
	loginFn        func(ctx context.Context, username, password string) (*domain.TokenPair, error)
	refreshFn      func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	authenticateFn func(ctx context.Context, accessToken string) (int64, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Authenticate(ctx context.Context, accessToken string) (int64, error) {
	return s.authenticateFn(ctx, accessToken)
}

type stubNotificationService struct {
	createFn func(ctx context.Context, in ports.CreateNotificationInput) (*domain.Notification, error)
	listFn   func(ctx context.Context, userID int64, page domain.PageRequest) (*domain.PageResult, error)
	deleteFn func(ctx context.Context, userID, notificationID int64) error
}

func (s *stubNotificationService) Create(ctx context.Context, in ports.CreateNotificationInput) (*domain.Notification, error) {
	return s.createFn(ctx, in)
}

func (s *stubNotificationService) List(ctx context.Context, userID int64, page domain.PageRequest) (*domain.PageResult, error) {
	return s.listFn(ctx, userID, page)
}

func (s *stubNotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	return s.deleteFn(ctx, userID, notificationID)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// authedContext returns a context that looks like it passed the bearer middleware.
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID int64) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.UserIDContextKey, userID)
	return c
}

func samplePair() *domain.TokenPair {
	return &domain.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    domain.TokenTypeBearer,
		UserID:       1,
	}
}
