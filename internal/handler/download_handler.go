package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/progress"
	"tubefetch/backend/internal/service"
)

const (
	progressPollInterval = 100 * time.Millisecond

	// progressIdleTimeout closes an event stream whose download never
	// reports anything, so abandoned streams do not pile up.
	progressIdleTimeout = 2 * time.Minute
)

type DownloadHandler struct {
	downloads  service.DownloadService
	identities service.IdentityService
	limits     service.RateLimitService
	progress   progress.Store

	pollInterval time.Duration
	idleTimeout  time.Duration
}

type downloadRequest struct {
	URL        string `json:"url"`
	Type       string `json:"type"`
	Quality    string `json:"quality"`
	ProgressID string `json:"progressId"`
}

type checkLimitResponse struct {
	CanDownload  bool   `json:"canDownload"`
	Remaining    int    `json:"remaining"`
	RequiresAuth bool   `json:"requiresAuth"`
	Error        string `json:"error,omitempty"`
	RedirectTo   string `json:"redirectTo,omitempty"`
}

func NewDownloadHandler(downloads service.DownloadService, identities service.IdentityService, limits service.RateLimitService, store progress.Store) *DownloadHandler {
	return &DownloadHandler{
		downloads:    downloads,
		identities:   identities,
		limits:       limits,
		progress:     store,
		pollInterval: progressPollInterval,
		idleTimeout:  progressIdleTimeout,
	}
}

func (h *DownloadHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/download", h.Download)
	g.GET("/download/check-limit", h.CheckLimit)
	g.GET("/download/progress", h.Progress)
}

func (h *DownloadHandler) Download(c echo.Context) error {
	var req downloadRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	ctx := c.Request().Context()
	userID, _ := c.Get(UserIDContextKey).(string)
	identity, err := h.identities.Resolve(ctx, userID, c.Request().Header)
	if err != nil {
		return writeServiceError(c, err)
	}

	result, err := h.downloads.Download(ctx, identity, service.DownloadRequest{
		URL:        req.URL,
		MediaType:  req.Type,
		Quality:    req.Quality,
		ProgressID: req.ProgressID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	defer h.downloads.ScheduleCleanup(result.FilePath)

	c.Response().Header().Set(echo.HeaderContentType, result.ContentType)
	return c.Attachment(result.FilePath, result.Filename)
}

// CheckLimit reports whether the caller may download. Authenticated callers
// always can; anonymous callers get one download per window and a 429 with a
// sign-in redirect once it is spent.
func (h *DownloadHandler) CheckLimit(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get(UserIDContextKey).(string)
	identity, err := h.identities.Resolve(ctx, userID, c.Request().Header)
	if err != nil {
		return writeServiceError(c, err)
	}

	if identity.Authenticated {
		remaining := identity.Tier.MaxRequests
		if identity.Tier.MaxRequests <= 0 {
			remaining = -1
		} else if usage, err := h.limits.Peek(ctx, identity.Identifier, identity.Tier); err != nil {
			return writeServiceError(c, err)
		} else if usage != nil {
			remaining = usage.Remaining
		}
		return c.JSON(http.StatusOK, checkLimitResponse{
			CanDownload: true,
			Remaining:   remaining,
		})
	}

	usage, err := h.limits.Peek(ctx, identity.Identifier, identity.Tier)
	if err != nil {
		return writeServiceError(c, err)
	}
	if usage != nil && usage.Count >= 1 {
		return c.JSON(http.StatusTooManyRequests, checkLimitResponse{
			CanDownload:  false,
			Remaining:    0,
			RequiresAuth: true,
			Error:        "Download limit reached. Please sign in to download more videos.",
			RedirectTo:   signInPath,
		})
	}
	return c.JSON(http.StatusOK, checkLimitResponse{
		CanDownload: true,
		Remaining:   1,
	})
}

// Progress streams download percentages as server-sent events. The stream
// stays silent until the first progress write, then polls until completion
// or client disconnect.
func (h *DownloadHandler) Progress(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	lastSeen := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pct, ok := h.progress.Get(id)
			if !ok {
				if time.Since(lastSeen) > h.idleTimeout {
					return nil
				}
				continue
			}
			lastSeen = time.Now()
			if _, err := fmt.Fprintf(resp, "data: {\"progress\":%d}\n\n", pct); err != nil {
				return nil
			}
			resp.Flush()
			if pct >= 100 {
				h.progress.Delete(id)
				return nil
			}
		}
	}
}
