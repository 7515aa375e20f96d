package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/notifeed/notification-service/internal/core/domain"
	"github.com/notifeed/notification-service/internal/infrastructure/config"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "store.db"),
	}}
	ctx := context.Background()

	store, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close(ctx)

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	u := &domain.User{Username: "alice", PasswordHash: "h", AvatarURL: domain.DefaultAvatarURL, CreatedAt: time.Now()}
	if err := store.Users.Create(ctx, u); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	n := &domain.Notification{UserID: u.ID, Type: domain.NotificationLike, CreatedAt: time.Now()}
	if err := store.Notifications.Create(ctx, n); err != nil {
		t.Fatalf("Create notification: %v", err)
	}
	if err := store.Notifications.Delete(ctx, u.ID, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Notifications.Delete(ctx, u.ID, n.ID); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "oracle"}}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
