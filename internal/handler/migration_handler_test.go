package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tubefetch/backend/internal/handler"
	"tubefetch/backend/internal/service"
	"tubefetch/backend/internal/service/mock"
)

func TestMigrationHandler_Migrate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	migrationService := mock.NewMockMigrationService(ctrl)
	identityService := mock.NewMockIdentityService(ctrl)
	h := handler.NewMigrationHandler(migrationService, identityService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/api/auth/migrate-downloads", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	c, rec := newTestContext(e, req)
	c.Set(handler.UserIDContextKey, "user-1")

	identityService.EXPECT().ClientIP(req.Header).Return("203.0.113.7")
	migrationService.EXPECT().
		Migrate(gomock.Any(), "user-1", "203.0.113.7").
		Return(service.MigrationResult{MigratedCount: 3}, nil)

	err := h.Migrate(c)
	require.NoError(t, err)

	var resp handler.MigrationResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.True(t, resp.Success)
	require.Equal(t, 3, resp.MigratedCount)
}

func TestMigrationHandler_Migrate_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	migrationService := mock.NewMockMigrationService(ctrl)
	identityService := mock.NewMockIdentityService(ctrl)
	h := handler.NewMigrationHandler(migrationService, identityService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/api/auth/migrate-downloads", nil)
	c, rec := newTestContext(e, req)

	identityService.EXPECT().ClientIP(req.Header).Return("127.0.0.1")
	migrationService.EXPECT().
		Migrate(gomock.Any(), "", "127.0.0.1").
		Return(service.MigrationResult{}, service.ErrUnauthorized)

	err := h.Migrate(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
