package ports

import (
	"context"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// UserRepository defines persistence for user records.
type UserRepository interface {
	// Create inserts user and fills in ID and CreatedAt. A duplicate username
	// must surface as domain.ErrUsernameTaken, enforced by the store itself.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
