package ports

import (
	"context"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// CreateNotificationInput is the DTO passed from the transport layer.
type CreateNotificationInput struct {
	UserID int64
	Type   string
	Text   string
}

// NotificationService defines the use cases of the notification feed.
type NotificationService interface {
	Create(ctx context.Context, in CreateNotificationInput) (*domain.Notification, error)
	List(ctx context.Context, userID int64, page domain.PageRequest) (*domain.PageResult, error)
	Delete(ctx context.Context, userID, notificationID int64) error
}
