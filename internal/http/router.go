package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tubefetch/backend/internal/handler"
	"tubefetch/backend/internal/service"
)

// NewRouter wires all handlers onto a configured Echo instance. staticDir
// is the built frontend; empty disables static serving.
func NewRouter(
	analyzeHandler *handler.AnalyzeHandler,
	downloadHandler *handler.DownloadHandler,
	migrationHandler *handler.MigrationHandler,
	historyHandler *handler.HistoryHandler,
	authHandler *handler.AuthHandler,
	proxyHandler *handler.ProxyHandler,
	authService service.AuthService,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	requireAuth := JWTAuthMiddleware(authService)
	optionalAuth := OptionalAuthMiddleware(authService)

	api := e.Group("/api", optionalAuth)
	analyzeHandler.RegisterRoutes(api)
	downloadHandler.RegisterRoutes(api)
	proxyHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api, requireAuth)
	historyHandler.RegisterRoutes(api, requireAuth)

	migrate := e.Group("/api", requireAuth)
	migrationHandler.RegisterRoutes(migrate)

	registerStatic(e, staticDir)

	return e
}
