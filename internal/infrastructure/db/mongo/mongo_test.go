package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/notifeed/notification-service/internal/core/domain"
	"github.com/notifeed/notification-service/internal/core/ports"
)

var (
	_ ports.UserRepository         = (*UserRepository)(nil)
	_ ports.NotificationRepository = (*NotificationRepository)(nil)
)

func TestMongoUser_CreatedAtIsDatetime(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.FixedZone("CET", 3600))
	raw, err := bson.Marshal(toMongoUser(7, &domain.User{Username: "alice", CreatedAt: created}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	val := bson.Raw(raw).Lookup("created_at")
	if val.Type != bsontype.DateTime {
		t.Fatalf("created_at stored as %s, want datetime", val.Type)
	}

	var mu mongoUser
	if err := bson.Unmarshal(raw, &mu); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got := mu.toDomain()
	if !got.CreatedAt.Equal(created) || got.CreatedAt.Location() != time.UTC {
		t.Fatalf("created_at = %v, want %v in UTC", got.CreatedAt, created)
	}
	if got.ID != 7 || got.Username != "alice" {
		t.Fatalf("unexpected user %+v", got)
	}
}

// Runs against a live server; set MONGO_TEST_URI to enable.
func TestRepositories_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	client, db, err := Connect(ctx, Config{URI: uri, Database: "notifeed_test_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	users := NewUserRepository(db)
	notes := NewNotificationRepository(db)

	u := &domain.User{Username: "alice", PasswordHash: "h", AvatarURL: domain.DefaultAvatarURL, CreatedAt: time.Now()}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected first id to be 1, got %d", u.ID)
	}
	found, err := users.FindByUsername(ctx, "alice")
	if err != nil || found.ID != u.ID {
		t.Fatalf("FindByUsername: %+v %v", found, err)
	}
	// BSON datetimes carry millisecond precision.
	if !found.CreatedAt.Equal(u.CreatedAt.Truncate(time.Millisecond)) {
		t.Fatalf("created_at = %v, want %v", found.CreatedAt, u.CreatedAt)
	}
	if err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h", AvatarURL: "a", CreatedAt: time.Now()}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := notes.Create(ctx, &domain.Notification{UserID: u.ID, Type: domain.NotificationLike, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Create notification: %v", err)
		}
	}
	if err := notes.Create(ctx, &domain.Notification{UserID: 42, Type: domain.NotificationLike, CreatedAt: time.Now()}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	items, total, err := notes.List(ctx, u.ID, domain.PageRequest{Page: 2, PerPage: 2, Order: domain.OrderAsc})
	if err != nil || total != 3 || len(items) != 1 || items[0].ID != 3 {
		t.Fatalf("unexpected page: total=%d items=%+v err=%v", total, items, err)
	}
	if err := notes.Delete(ctx, u.ID+1, items[0].ID); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}
