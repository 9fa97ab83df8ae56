package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/repository"
	"tubefetch/backend/internal/repository/testutil"
	"tubefetch/backend/internal/service"
)

func TestHistoryService_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewHistoryService(repository.NewHistoryRepository(db))
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice@example.com")
	bob := testutil.SeedUser(t, db, "bob@example.com")
	testutil.SeedHistory(t, db, model.VideoHistory{UserID: alice, VideoID: "aaaaaaaaaaa", VideoURL: "u", Title: "first", DownloadType: "video"})
	testutil.SeedHistory(t, db, model.VideoHistory{UserID: alice, VideoID: "bbbbbbbbbbb", VideoURL: "u", Title: "second", DownloadType: "audio"})
	testutil.SeedHistory(t, db, model.VideoHistory{UserID: bob, VideoID: "ccccccccccc", VideoURL: "u", Title: "other", DownloadType: "video"})

	records, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, records, 2, "only the caller's records")

	_, err = svc.List(ctx, "")
	require.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestHistoryService_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewHistoryService(repository.NewHistoryRepository(db))
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice@example.com")
	bob := testutil.SeedUser(t, db, "bob@example.com")
	id := testutil.SeedHistory(t, db, model.VideoHistory{UserID: alice, VideoID: "aaaaaaaaaaa", VideoURL: "u", Title: "mine", DownloadType: "video"})

	err := svc.Delete(ctx, bob, id)
	require.ErrorIs(t, err, service.ErrNotFound, "cannot delete another user's record")

	require.NoError(t, svc.Delete(ctx, alice, id))

	err = svc.Delete(ctx, alice, id)
	require.ErrorIs(t, err, service.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "", id), service.ErrUnauthorized)
}

func TestHistoryService_Clear(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewHistoryService(repository.NewHistoryRepository(db))
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice@example.com")
	testutil.SeedHistory(t, db, model.VideoHistory{UserID: alice, VideoID: "aaaaaaaaaaa", VideoURL: "u", Title: "a", DownloadType: "video"})
	testutil.SeedHistory(t, db, model.VideoHistory{UserID: alice, VideoID: "bbbbbbbbbbb", VideoURL: "u", Title: "b", DownloadType: "video"})

	require.NoError(t, svc.Clear(ctx, alice))

	records, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, records)

	require.ErrorIs(t, svc.Clear(ctx, ""), service.ErrUnauthorized)
}
