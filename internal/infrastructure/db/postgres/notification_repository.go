package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository on PostgreSQL.
type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const q = `
	INSERT INTO notifications (user_id, type, text, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`
	err := r.DB.QueryRow(ctx, q, n.UserID, string(n.Type), n.Text, n.CreatedAt.UTC()).Scan(&n.ID)
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns one page of userID's notifications and the total count.
func (r *NotificationRepository) List(ctx context.Context, userID int64, page domain.PageRequest) ([]domain.Notification, int64, error) {
	var total int64
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1;`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	q := `SELECT id, user_id, type, text, created_at FROM notifications
	WHERE user_id = $1 ORDER BY id ` + orderSQL(page.Order) + ` LIMIT $2`
	args := []any{userID, page.PerPage}
	if offset, ok := page.Offset(); ok {
		q += ` OFFSET $3`
		args = append(args, offset)
	}

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var (
			n   domain.Notification
			typ string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Text, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		n.Type = domain.NotificationType(typ)
		n.CreatedAt = n.CreatedAt.UTC()
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Delete removes the notification only when userID owns it.
func (r *NotificationRepository) Delete(ctx context.Context, userID, notificationID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2;`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func orderSQL(o domain.SortOrder) string {
	if o == domain.OrderDesc {
		return "DESC"
	}
	return "ASC"
}
