package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"tubefetch/backend/internal/repository"
	"tubefetch/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestRateLimitRepository_Get_Missing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)

	entry, err := repo.Get(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestRateLimitRepository_StartWindow_CreatesEntry(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)

	now := time.Now().UTC()
	ok, err := repo.StartWindow(context.Background(), "1.2.3.4", now.Add(5*time.Hour), now)
	require.NoError(t, err)
	require.True(t, ok)

	entry, err := repo.Get(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, 1, entry.Count)
	require.WithinDuration(t, now.Add(5*time.Hour), entry.ResetAt, time.Second)
}

func TestRateLimitRepository_StartWindow_DoesNotResetLiveWindow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 3, now.Add(time.Hour))

	ok, err := repo.StartWindow(context.Background(), "1.2.3.4", now.Add(5*time.Hour), now)
	require.NoError(t, err)
	require.False(t, ok, "a live window must not be restarted")

	entry, err := repo.Get(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, 3, entry.Count)
}

func TestRateLimitRepository_StartWindow_ResetsExpiredWindow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 5, now.Add(-time.Minute))

	ok, err := repo.StartWindow(context.Background(), "1.2.3.4", now.Add(5*time.Hour), now)
	require.NoError(t, err)
	require.True(t, ok)

	entry, err := repo.Get(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, 1, entry.Count)
	require.True(t, entry.ResetAt.After(now))
}

func TestRateLimitRepository_IncrementIfAllowed(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 1, now.Add(time.Hour))

	ok, err := repo.IncrementIfAllowed(ctx, "1.2.3.4", 5, now)
	require.NoError(t, err)
	require.True(t, ok)

	entry, err := repo.Get(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, 2, entry.Count)
}

func TestRateLimitRepository_IncrementIfAllowed_AtCeiling(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 5, now.Add(time.Hour))

	ok, err := repo.IncrementIfAllowed(ctx, "1.2.3.4", 5, now)
	require.NoError(t, err)
	require.False(t, ok)

	entry, err := repo.Get(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, 5, entry.Count, "count must not move past the ceiling")
}

func TestRateLimitRepository_IncrementIfAllowed_ExpiredWindow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 1, now.Add(-time.Minute))

	ok, err := repo.IncrementIfAllowed(context.Background(), "1.2.3.4", 5, now)
	require.NoError(t, err)
	require.False(t, ok, "an expired window is not a live window")
}

func TestRateLimitRepository_IncrementIfAllowed_NoCeiling(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "user-1", 9999, now.Add(time.Hour))

	ok, err := repo.IncrementIfAllowed(ctx, "user-1", 0, now)
	require.NoError(t, err)
	require.True(t, ok)

	entry, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 10000, entry.Count)
}

// One unit left, many concurrent claimants: exactly one wins.
func TestRateLimitRepository_IncrementIfAllowed_BoundaryRace(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 4, now.Add(time.Hour))

	const claimants = 8
	results := make([]bool, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := repo.IncrementIfAllowed(ctx, "1.2.3.4", 5, now)
			require.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, ok := range results {
		if ok {
			winners++
		}
	}
	require.Equal(t, 1, winners, "exactly one claimant may take the last unit")

	entry, err := repo.Get(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.Equal(t, 5, entry.Count)
}

func TestRateLimitRepository_MigrateToUser_NoIPEntry(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)

	migrated, err := repo.MigrateToUser(context.Background(), "1.2.3.4", "user-1", time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, 0, migrated)
}

func TestRateLimitRepository_MigrateToUser_MergesCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 3, now.Add(time.Hour))
	testutil.SeedRateLimit(t, db, "user-1", 2, now.Add(2*time.Hour))

	migrated, err := repo.MigrateToUser(ctx, "1.2.3.4", "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 3, migrated)

	userEntry, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 5, userEntry.Count)

	ipEntry, err := repo.Get(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.Nil(t, ipEntry, "IP entry must be gone after migration")
}

func TestRateLimitRepository_MigrateToUser_CreatesUserEntry(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	resetAt := now.Add(time.Hour)
	testutil.SeedRateLimit(t, db, "1.2.3.4", 1, resetAt)

	migrated, err := repo.MigrateToUser(ctx, "1.2.3.4", "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 1, migrated)

	userEntry, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, userEntry)
	require.Equal(t, 1, userEntry.Count)
	require.WithinDuration(t, resetAt, userEntry.ResetAt, time.Second, "IP window carries over")
}

func TestRateLimitRepository_MigrateToUser_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "1.2.3.4", 2, now.Add(time.Hour))

	first, err := repo.MigrateToUser(ctx, "1.2.3.4", "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 2, first)

	second, err := repo.MigrateToUser(ctx, "1.2.3.4", "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 0, second, "second migration finds nothing to move")

	userEntry, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, userEntry.Count, "no double counting")
}

func TestRateLimitRepository_DeleteExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRateLimitRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	testutil.SeedRateLimit(t, db, "expired-1", 5, now.Add(-2*time.Hour))
	testutil.SeedRateLimit(t, db, "expired-2", 1, now.Add(-time.Minute))
	testutil.SeedRateLimit(t, db, "live", 1, now.Add(time.Hour))

	deleted, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	entry, err := repo.Get(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, entry)
}
