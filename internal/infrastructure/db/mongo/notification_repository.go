package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository using MongoDB.
// There are no foreign keys, so Create checks the owner explicitly.
type NotificationRepository struct {
	db    *mongo.Database
	col   *mongo.Collection
	users *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		db:    db,
		col:   db.Collection(collectionNotifications),
		users: db.Collection(collectionUsers),
	}
}

type mongoNotification struct {
	ID        int64     `bson:"_id"`
	UserID    int64     `bson:"user_id"`
	Type      string    `bson:"type"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owners, err := r.users.CountDocuments(ctx, bson.M{"_id": n.UserID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check owner: %w", err)
	}
	if owners == 0 {
		return domain.ErrUserNotFound
	}

	id, err := nextID(ctx, r.db, collectionNotifications)
	if err != nil {
		return err
	}

	doc := mongoNotification{
		ID:        id,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Text:      n.Text,
		CreatedAt: n.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	n.ID = id
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, userID int64, page domain.PageRequest) ([]domain.Notification, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	dir := 1
	if page.Order == domain.OrderDesc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: dir}}).
		SetLimit(int64(page.PerPage))
	if offset, ok := page.Offset(); ok {
		opts.SetSkip(int64(offset))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find notifications: %w", err)
	}
	var docs []mongoNotification
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode notifications: %w", err)
	}

	items := make([]domain.Notification, 0, len(docs))
	for _, d := range docs {
		items = append(items, domain.Notification{
			ID:        d.ID,
			UserID:    d.UserID,
			Type:      domain.NotificationType(d.Type),
			Text:      d.Text,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return items, total, nil
}

// Delete removes the notification only when userID owns it.
func (r *NotificationRepository) Delete(ctx context.Context, userID, notificationID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": notificationID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
