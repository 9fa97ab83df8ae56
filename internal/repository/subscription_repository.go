//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tubefetch/backend/internal/model"
)

// SubscriptionRepository stores user subscription plans.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.UserSubscription, error)
	Create(ctx context.Context, userID, plan string) (*model.UserSubscription, error)
	UpdatePlan(ctx context.Context, userID, plan string) error
}

type subscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID string) (*model.UserSubscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, plan, status, created_at, updated_at FROM user_subscriptions WHERE user_id = ?
	`, userID)

	var sub model.UserSubscription
	var createdAt, updatedAt string
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Plan, &sub.Status, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	sub.CreatedAt, _ = parseTime(createdAt)
	sub.UpdatedAt, _ = parseTime(updatedAt)
	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, userID, plan string) (*model.UserSubscription, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_subscriptions (id, user_id, plan, status, created_at, updated_at)
		VALUES (?, ?, ?, 'active', ?, ?)
	`, id, userID, plan, formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}

	return &model.UserSubscription{
		ID:        id,
		UserID:    userID,
		Plan:      plan,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *subscriptionRepository) UpdatePlan(ctx context.Context, userID, plan string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_subscriptions SET plan = ?, updated_at = ? WHERE user_id = ?
	`, plan, formatTime(time.Now()), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
