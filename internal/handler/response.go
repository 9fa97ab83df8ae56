package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/service"
)

const signInPath = "/sign-in"

type errorResponse struct {
	Error string `json:"error"`
}

// limitExceededResponse is the structured 429 body for exhausted quotas. The
// frontend redirects anonymous callers to sign-in off these fields.
type limitExceededResponse struct {
	Error        string `json:"error"`
	RequiresAuth bool   `json:"requiresAuth"`
	RedirectTo   string `json:"redirectTo"`
	ResetAt      string `json:"resetAt,omitempty"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

func limitExceededJSON(c echo.Context, resetTime time.Time) error {
	response := limitExceededResponse{
		Error:        "Download limit reached. Please sign in to download more videos.",
		RequiresAuth: true,
		RedirectTo:   signInPath,
	}
	if !resetTime.IsZero() {
		response.ResetAt = resetTime.UTC().Format(time.RFC3339)
	}
	return c.JSON(http.StatusTooManyRequests, response)
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
func writeServiceError(c echo.Context, err error) error {
	var limitErr *service.LimitExceededError
	var toolErr *service.ToolError
	switch {
	case errors.Is(err, service.ErrInvalid):
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrUnauthorized):
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrUserExists):
		return errorJSON(c, http.StatusConflict, "user already exists")
	case errors.As(err, &limitErr):
		return limitExceededJSON(c, limitErr.ResetTime)
	case errors.Is(err, service.ErrLimitExceeded):
		return limitExceededJSON(c, time.Time{})
	case errors.As(err, &toolErr):
		// yt-dlp failures carry an extracted message worth relaying.
		return errorJSON(c, http.StatusInternalServerError, toolErr.Message)
	case errors.Is(err, service.ErrUpstream):
		return errorJSON(c, http.StatusBadGateway, "video service unavailable")
	default:
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
}
