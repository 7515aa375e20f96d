package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notifeed/notification-service/internal/core/domain"
)

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const q = `
	INSERT INTO users (username, password_hash, avatar_url, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`
	err := r.DB.QueryRow(ctx, q, user.Username, user.PasswordHash, user.AvatarURL, user.CreatedAt.UTC()).Scan(&user.ID)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT id, username, password_hash, avatar_url, created_at FROM users WHERE id = $1;`
	return r.scanOne(r.DB.QueryRow(ctx, q, id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `SELECT id, username, password_hash, avatar_url, created_at FROM users WHERE username = $1;`
	return r.scanOne(r.DB.QueryRow(ctx, q, username))
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.AvatarURL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
