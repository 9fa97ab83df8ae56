package db_test

import (
	"database/sql"
	"testing"

	"tubefetch/backend/internal/db"

	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := sql.Open("sqlite", "file:migrate_tables?mode=memory&cache=shared")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(database))

	for _, table := range []string{"users", "user_subscriptions", "rate_limits", "video_history"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var idx string
	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_rate_limits_reset_at'`).Scan(&idx)
	require.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := sql.Open("sqlite", "file:migrate_idempotent?mode=memory&cache=shared")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))

	// The added column survives a re-run without duplication errors.
	var count int
	err = database.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('user_subscriptions') WHERE name = 'cancel_at_period_end'`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
