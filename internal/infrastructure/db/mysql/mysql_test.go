package mysql

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notifeed/notification-service/internal/core/domain"
	"github.com/notifeed/notification-service/internal/core/ports"
)

var (
	_ ports.UserRepository         = (*UserRepository)(nil)
	_ ports.NotificationRepository = (*NotificationRepository)(nil)
)

func TestErrorMapping(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: errDuplicateEntry})
	if !isDuplicate(dup) || isMissingReference(dup) {
		t.Fatal("1062 must map to duplicate only")
	}

	fk := fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: errNoReferencedRow})
	if !isMissingReference(fk) || isDuplicate(fk) {
		t.Fatal("1452 must map to missing reference only")
	}

	if !isDuplicate(gorm.ErrDuplicatedKey) || !isMissingReference(gorm.ErrForeignKeyViolated) {
		t.Fatal("translated gorm errors must be recognised")
	}
	if isDuplicate(errors.New("boom")) {
		t.Fatal("plain errors must not match")
	}
}

func TestNotFound(t *testing.T) {
	if !errors.Is(notFound(gorm.ErrRecordNotFound), domain.ErrUserNotFound) {
		t.Fatal("expected ErrUserNotFound")
	}
	other := errors.New("boom")
	if err := notFound(other); !errors.Is(err, other) || errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unexpected mapping: %v", err)
	}
}

func TestTableNames(t *testing.T) {
	if (userModel{}).TableName() != "users" || (notificationModel{}).TableName() != "notifications" {
		t.Fatal("unexpected table names")
	}
}

// Runs against a live server; set MYSQL_TEST_DSN to enable.
func TestRepositories_Integration(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	ctx := context.Background()

	db, err := NewMySQL(ctx, dsn)
	if err != nil {
		t.Fatalf("NewMySQL: %v", err)
	}
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	users := NewUserRepository(db)
	notes := NewNotificationRepository(db)

	u := &domain.User{Username: "it-" + uuid.NewString()[:8], PasswordHash: "h", AvatarURL: domain.DefaultAvatarURL, CreatedAt: time.Now()}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	if err := users.Create(ctx, &domain.User{Username: u.Username, PasswordHash: "h", AvatarURL: "a", CreatedAt: time.Now()}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	n := &domain.Notification{UserID: u.ID, Type: domain.NotificationComment, Text: "x", CreatedAt: time.Now()}
	if err := notes.Create(ctx, n); err != nil {
		t.Fatalf("Create notification: %v", err)
	}
	if err := notes.Create(ctx, &domain.Notification{UserID: -1, Type: domain.NotificationLike, CreatedAt: time.Now()}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	items, total, err := notes.List(ctx, u.ID, domain.PageRequest{Page: 1, PerPage: 10, Order: domain.OrderDesc})
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("unexpected list: total=%d items=%v err=%v", total, items, err)
	}
	if err := notes.Delete(ctx, u.ID, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := notes.Delete(ctx, u.ID, n.ID); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}
