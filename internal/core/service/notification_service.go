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

type NotificationService struct {
	repo   ports.NotificationRepository
	logger zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Create validates and stores a notification owned by in.UserID.
func (s *NotificationService) Create(ctx context.Context, in ports.CreateNotificationInput) (*domain.Notification, error) {
	ctx, span := tracer.Start(ctx, "NotificationService.Create")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", in.UserID))

	n := &domain.Notification{
		UserID:    in.UserID,
		Type:      domain.NotificationType(in.Type),
		Text:      in.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error().Err(err).Int64("user_id", in.UserID).Msg("failed to create notification")
		return nil, fmt.Errorf("create notification: %w", err)
	}

	metrics.NotificationsCreatedTotal.WithLabelValues(string(n.Type)).Inc()
	s.logger.Info().Int64("user_id", n.UserID).Int64("notification_id", n.ID).Str("type", string(n.Type)).Msg("notification created")
	return n, nil
}

// List returns one page of the user's notifications ordered by id.
func (s *NotificationService) List(ctx context.Context, userID int64, page domain.PageRequest) (*domain.PageResult, error) {
	ctx, span := tracer.Start(ctx, "NotificationService.List")
	defer span.End()

	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("user.id", userID),
		attribute.Int("page", page.Page),
		attribute.Int("per_page", page.PerPage),
	)

	items, total, err := s.repo.List(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return domain.NewPageResult(page, total, items), nil
}

// Delete removes a notification the user owns. Someone else's notification
// is reported exactly like a missing one.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	ctx, span := tracer.Start(ctx, "NotificationService.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, userID, notificationID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return domain.ErrNotificationNotFound
		}
		return fmt.Errorf("delete notification %d: %w", notificationID, err)
	}

	metrics.NotificationsDeletedTotal.Inc()
	s.logger.Info().Int64("user_id", userID).Int64("notification_id", notificationID).Msg("notification deleted")
	return nil
}
