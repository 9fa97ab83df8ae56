//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"tubefetch/backend/internal/model"
)

// UserRepository stores user accounts.
type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user model.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Name, user.PasswordHash, formatTime(now), formatTime(now))
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE id = ?
	`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE email = ?
	`, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*model.User, error) {
	var user model.User
	var createdAt, updatedAt string
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.CreatedAt, _ = parseTime(createdAt)
	user.UpdatedAt, _ = parseTime(updatedAt)
	return &user, nil
}
