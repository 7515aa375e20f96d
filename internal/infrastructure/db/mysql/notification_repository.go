package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository with GORM.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := notificationModel{
		UserID:    n.UserID,
		Type:      string(n.Type),
		Text:      n.Text,
		CreatedAt: n.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		if isMissingReference(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	n.ID = m.ID
	return nil
}

// List returns one page of userID's notifications and the total count.
func (r *NotificationRepository) List(ctx context.Context, userID int64, page domain.PageRequest) ([]domain.Notification, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&notificationModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	q := db.Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: page.Order == domain.OrderDesc}).
		Limit(page.PerPage)
	if offset, ok := page.Offset(); ok {
		q = q.Offset(offset)
	}

	var rows []notificationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("query notifications: %w", err)
	}

	items := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		items = append(items, domain.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Type:      domain.NotificationType(m.Type),
			Text:      m.Text,
			CreatedAt: m.CreatedAt.UTC(),
		})
	}
	return items, total, nil
}

// Delete removes the notification only when userID owns it.
func (r *NotificationRepository) Delete(ctx context.Context, userID, notificationID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&notificationModel{})
	if res.Error != nil {
		return fmt.Errorf("delete notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
