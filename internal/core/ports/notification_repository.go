package ports

import (
	"context"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// NotificationRepository defines persistence for notifications. Every
// query is scoped to the owning user.
type NotificationRepository interface {
	// Create inserts n and fills in ID and CreatedAt. Returns
	// domain.ErrUserNotFound when the owner no longer exists.
	Create(ctx context.Context, n *domain.Notification) error
	// List returns the requested page and the total number of rows owned by userID.
	List(ctx context.Context, userID int64, page domain.PageRequest) ([]domain.Notification, int64, error)
	// Delete removes the notification only if userID owns it, otherwise
	// returns domain.ErrNotificationNotFound.
	Delete(ctx context.Context, userID, notificationID int64) error
}
