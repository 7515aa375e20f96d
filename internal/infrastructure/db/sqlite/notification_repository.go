package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository using SQLite.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db.SqlDB}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, type, text, created_at) VALUES (?, ?, ?, ?)`,
		n.UserID, string(n.Type), n.Text, n.CreatedAt.UTC(),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	n.ID = id
	return nil
}

// List returns one page of userID's notifications and the total count.
// The page's Order has already been validated, so it is safe to splice in.
func (r *NotificationRepository) List(ctx context.Context, userID int64, page domain.PageRequest) ([]domain.Notification, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ?`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := `SELECT id, user_id, type, text, created_at FROM notifications
		WHERE user_id = ? ORDER BY id ` + orderSQL(page.Order) + ` LIMIT ?`
	args := []any{userID, page.PerPage}
	if offset, ok := page.Offset(); ok {
		query += ` OFFSET ?`
		args = append(args, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	items, err := scanNotifications(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Delete removes the notification only when userID owns it.
func (r *NotificationRepository) Delete(ctx context.Context, userID, notificationID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND user_id = ?`, notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func scanNotifications(rows *sql.Rows) ([]domain.Notification, error) {
	var items []domain.Notification
	for rows.Next() {
		var (
			n   domain.Notification
			typ string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Type = domain.NotificationType(typ)
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return items, nil
}

func orderSQL(o domain.SortOrder) string {
	if o == domain.OrderDesc {
		return "DESC"
	}
	return "ASC"
}
