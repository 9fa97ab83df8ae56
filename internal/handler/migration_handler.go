package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/service"
)

type MigrationHandler struct {
	migrations service.MigrationService
	identities service.IdentityService
}

type migrationResponse struct {
	Success       bool `json:"success"`
	MigratedCount int  `json:"migratedCount"`
}

func NewMigrationHandler(migrations service.MigrationService, identities service.IdentityService) *MigrationHandler {
	return &MigrationHandler{migrations: migrations, identities: identities}
}

func (h *MigrationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/migrate-downloads", h.Migrate)
}

// Migrate folds the caller's anonymous quota usage into their account
// ledger after sign-in.
func (h *MigrationHandler) Migrate(c echo.Context) error {
	userID, _ := c.Get(UserIDContextKey).(string)
	ip := h.identities.ClientIP(c.Request().Header)

	result, err := h.migrations.Migrate(c.Request().Context(), userID, ip)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, migrationResponse{Success: true, MigratedCount: result.MigratedCount})
}
