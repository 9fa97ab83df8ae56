//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tubefetch/backend/internal/model"
)

// RateLimitRepository stores quota ledger entries. Mutations that must be
// atomic across concurrent requests (the check-and-increment and the window
// restart) are expressed as conditional writes so the database, not the
// process, serializes them.
type RateLimitRepository interface {
	Get(ctx context.Context, identifier string) (*model.RateLimit, error)
	// IncrementIfAllowed adds one unit inside a live window. maxRequests <= 0
	// means no ceiling. Returns false when no live entry had room.
	IncrementIfAllowed(ctx context.Context, identifier string, maxRequests int, now time.Time) (bool, error)
	// StartWindow upserts a fresh window with count = 1, guarded so it only
	// wins when the entry is absent or already expired.
	StartWindow(ctx context.Context, identifier string, resetAt, now time.Time) (bool, error)
	// MigrateToUser folds the IP-keyed entry into the user-keyed entry in one
	// transaction and deletes the IP entry. Returns the migrated count, 0
	// when no IP entry exists.
	MigrateToUser(ctx context.Context, ip, userID string, now time.Time) (int, error)
	// DeleteExpired removes entries whose window ended before the cutoff.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type rateLimitRepository struct {
	db *sql.DB
}

// NewRateLimitRepository creates a new rate limit repository.
func NewRateLimitRepository(db *sql.DB) RateLimitRepository {
	return &rateLimitRepository{db: db}
}

func (r *rateLimitRepository) Get(ctx context.Context, identifier string) (*model.RateLimit, error) {
	return getRateLimit(ctx, r.db, identifier)
}

func getRateLimit(ctx context.Context, q dbtx, identifier string) (*model.RateLimit, error) {
	row := q.QueryRowContext(ctx, `
		SELECT identifier, count, reset_at, created_at, updated_at FROM rate_limits WHERE identifier = ?
	`, identifier)

	var entry model.RateLimit
	var resetAt, createdAt, updatedAt string
	if err := row.Scan(&entry.Identifier, &entry.Count, &resetAt, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var err error
	if entry.ResetAt, err = parseTime(resetAt); err != nil {
		return nil, fmt.Errorf("parse reset_at: %w", err)
	}
	entry.CreatedAt, _ = parseTime(createdAt)
	entry.UpdatedAt, _ = parseTime(updatedAt)
	return &entry, nil
}

func (r *rateLimitRepository) IncrementIfAllowed(ctx context.Context, identifier string, maxRequests int, now time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE rate_limits
		SET count = count + 1, updated_at = ?
		WHERE identifier = ? AND reset_at > ? AND (? <= 0 OR count < ?)
	`, formatTime(now), identifier, formatTime(now), maxRequests, maxRequests)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *rateLimitRepository) StartWindow(ctx context.Context, identifier string, resetAt, now time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO rate_limits (identifier, count, reset_at, created_at, updated_at)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			count = 1,
			reset_at = excluded.reset_at,
			updated_at = excluded.updated_at
		WHERE rate_limits.reset_at <= ?
	`, identifier, formatTime(resetAt), formatTime(now), formatTime(now), formatTime(now))
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *rateLimitRepository) MigrateToUser(ctx context.Context, ip, userID string, now time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ipEntry, err := getRateLimit(ctx, tx, ip)
	if err != nil {
		return 0, fmt.Errorf("get ip entry: %w", err)
	}
	if ipEntry == nil {
		return 0, nil
	}

	userEntry, err := getRateLimit(ctx, tx, userID)
	if err != nil {
		return 0, fmt.Errorf("get user entry: %w", err)
	}

	if userEntry != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE rate_limits SET count = count + ?, updated_at = ? WHERE identifier = ?
		`, ipEntry.Count, formatTime(now), userID); err != nil {
			return 0, fmt.Errorf("merge counts: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rate_limits (identifier, count, reset_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, userID, ipEntry.Count, formatTime(ipEntry.ResetAt), formatTime(now), formatTime(now)); err != nil {
			return 0, fmt.Errorf("insert user entry: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rate_limits WHERE identifier = ?`, ip); err != nil {
		return 0, fmt.Errorf("delete ip entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return ipEntry.Count, nil
}

func (r *rateLimitRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rate_limits WHERE reset_at <= ?`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
