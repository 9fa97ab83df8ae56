package db

import (
	"database/sql"
	"fmt"

	// Register the sqlite driver for Open.
	_ "modernc.org/sqlite"
)

// Base schema. Text primary keys for auth-owned rows, snowflake IDs for
// history (no AUTOINCREMENT).
const baseSchema = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_subscriptions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  plan TEXT NOT NULL DEFAULT 'free',
  status TEXT NOT NULL DEFAULT 'active',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS rate_limits (
  identifier TEXT PRIMARY KEY,
  count INTEGER NOT NULL DEFAULT 0,
  reset_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS video_history (
  id INTEGER PRIMARY KEY,
  user_id TEXT NOT NULL,
  video_id TEXT NOT NULL,
  video_url TEXT NOT NULL,
  title TEXT NOT NULL,
  thumbnail TEXT NOT NULL,
  duration INTEGER,
  uploader TEXT,
  download_type TEXT NOT NULL,
  quality TEXT NOT NULL,
  format TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_video_history_user_id ON video_history(user_id);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: index for the ledger sweeper's expiry scan
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_rate_limits_reset_at ON rate_limits(reset_at)`); err != nil {
		return fmt.Errorf("create idx_rate_limits_reset_at: %w", err)
	}

	// Migration 2: composite index for history listing (newest first per user)
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_video_history_user_created ON video_history(user_id, created_at)`); err != nil {
		return fmt.Errorf("create idx_video_history_user_created: %w", err)
	}

	// Migration 3: add cancel_at_period_end to user_subscriptions if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('user_subscriptions') WHERE name = 'cancel_at_period_end'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check cancel_at_period_end column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE user_subscriptions ADD COLUMN cancel_at_period_end INTEGER NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add cancel_at_period_end column: %w", err)
		}
	}

	return nil
}

// BuildDSN builds the SQLite DSN with the pragmas the service relies on.
func BuildDSN(path string) string {
	return "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
}

// Open opens the SQLite database at path and applies migrations.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", BuildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}
