package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"tubefetch/backend/internal/db"
	"tubefetch/backend/internal/model"
	"tubefetch/backend/pkg/snowflake"

	"github.com/google/uuid"
)

// snowflakeOnce ensures the snowflake node is initialized once across
// parallel tests.
var snowflakeOnce sync.Once

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	// Shared-cache mode so concurrent connections see the same in-memory
	// database; a unique name per test avoids cross-test bleed.
	dbName := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(), time.Now().UnixNano())
	database, err := sql.Open("sqlite", dbName)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// SeedUser inserts a user row and returns its id.
func SeedUser(t *testing.T, db *sql.DB, email string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, email, "Test User", "x", now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return id
}

// SeedRateLimit inserts a ledger entry.
func SeedRateLimit(t *testing.T, db *sql.DB, identifier string, count int, resetAt time.Time) {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO rate_limits (identifier, count, reset_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		identifier, count, resetAt.UTC().Format(time.RFC3339Nano), now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed rate limit: %v", err)
	}
}

// SeedSubscription inserts a subscription row for a user.
func SeedSubscription(t *testing.T, db *sql.DB, userID, plan string) {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO user_subscriptions (id, user_id, plan, status, created_at, updated_at) VALUES (?, ?, ?, 'active', ?, ?)`,
		uuid.NewString(), userID, plan, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed subscription: %v", err)
	}
}

// SeedHistory inserts a history row and returns its id.
func SeedHistory(t *testing.T, db *sql.DB, record model.VideoHistory) int64 {
	t.Helper()

	if record.ID == 0 {
		record.ID = snowflake.NextID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	var duration interface{}
	if record.Duration != nil {
		duration = *record.Duration
	}
	var uploader interface{}
	if record.Uploader != nil {
		uploader = *record.Uploader
	}

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO video_history (id, user_id, video_id, video_url, title, thumbnail, duration, uploader, download_type, quality, format, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, record.VideoID, record.VideoURL, record.Title, record.Thumbnail,
		duration, uploader, record.DownloadType, record.Quality, record.Format,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	return record.ID
}
