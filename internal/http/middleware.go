package http

import (
	nethttp "net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/handler"
	"tubefetch/backend/internal/service"
	"tubefetch/backend/pkg/logger"
)

// AuthCookieName mirrors the cookie the auth handler sets.
const AuthCookieName = handler.AuthCookieName

// JWTAuthMiddleware rejects requests without a valid session token and
// stores the authenticated user id on the context.
func JWTAuthMiddleware(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return c.JSON(nethttp.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			userID, err := auth.ValidateToken(token)
			if err != nil {
				return c.JSON(nethttp.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			c.Set(handler.UserIDContextKey, userID)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware resolves the user id when a valid token is present
// and lets anonymous requests through untouched. Endpoints behind it serve
// both audiences with different quota tiers.
func OptionalAuthMiddleware(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if userID, err := auth.ValidateToken(token); err == nil {
					c.Set(handler.UserIDContextKey, userID)
				}
			}
			return next(c)
		}
	}
}

// RequestLoggerMiddleware logs every request with latency and status.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case status >= nethttp.StatusInternalServerError:
				logger.Error("request", fields...)
			case status >= nethttp.StatusBadRequest:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		}
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
