package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/service"
)

// UserIDContextKey is where the auth middleware stores the caller's user id.
const UserIDContextKey = "userID"

type AnalyzeHandler struct {
	analyze    service.AnalyzeService
	identities service.IdentityService
	limits     service.RateLimitService
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type formatOptionResponse struct {
	Quality  string `json:"quality"`
	Format   string `json:"format"`
	URL      string `json:"url"`
	Filesize string `json:"filesize,omitempty"`
}

type rateLimitInfo struct {
	Remaining int    `json:"remaining"`
	Unlimited bool   `json:"unlimited"`
	ResetAt   string `json:"resetAt,omitempty"`
}

type analyzeResponse struct {
	VideoID   string                 `json:"videoId"`
	Title     string                 `json:"title"`
	Thumbnail string                 `json:"thumbnail"`
	Duration  int                    `json:"duration"`
	Uploader  string                 `json:"uploader,omitempty"`
	Video     []formatOptionResponse `json:"videoFormats"`
	Audio     []formatOptionResponse `json:"audioFormats"`
	RateLimit rateLimitInfo          `json:"rateLimit"`
}

func NewAnalyzeHandler(analyze service.AnalyzeService, identities service.IdentityService, limits service.RateLimitService) *AnalyzeHandler {
	return &AnalyzeHandler{analyze: analyze, identities: identities, limits: limits}
}

func (h *AnalyzeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.Analyze)
}

func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if req.URL == "" {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	ctx := c.Request().Context()
	userID, _ := c.Get(UserIDContextKey).(string)
	identity, err := h.identities.Resolve(ctx, userID, c.Request().Header)
	if err != nil {
		return writeServiceError(c, err)
	}

	limit, err := h.limits.Check(ctx, identity.Identifier, identity.Tier)
	if err != nil {
		return writeServiceError(c, err)
	}
	setRateLimitHeaders(c, limit)
	if !limit.Allowed {
		return c.JSON(http.StatusTooManyRequests, struct {
			errorResponse
			Message   string        `json:"message"`
			RateLimit rateLimitInfo `json:"rateLimit"`
		}{
			errorResponse: errorResponse{Error: "Rate limit exceeded"},
			Message:       retryMessage(identity.Tier, limit.ResetTime),
			RateLimit:     toRateLimitInfo(limit),
		})
	}

	result, err := h.analyze.Analyze(ctx, req.URL)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, analyzeResponse{
		VideoID:   result.VideoID,
		Title:     result.Title,
		Thumbnail: result.Thumbnail,
		Duration:  result.Duration,
		Uploader:  result.Uploader,
		Video:     toFormatOptions(result.Video),
		Audio:     toFormatOptions(result.Audio),
		RateLimit: toRateLimitInfo(limit),
	})
}

func toFormatOptions(options []service.FormatOption) []formatOptionResponse {
	response := make([]formatOptionResponse, 0, len(options))
	for _, option := range options {
		response = append(response, formatOptionResponse{
			Quality:  option.Quality,
			Format:   option.Format,
			URL:      option.URL,
			Filesize: option.Filesize,
		})
	}
	return response
}

func setRateLimitHeaders(c echo.Context, result service.RateLimitResult) {
	header := c.Response().Header()
	header.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	if !result.ResetTime.IsZero() {
		header.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime.UnixMilli(), 10))
	}
}

// retryMessage builds the human-readable hint shown when the quota window
// is exhausted.
func retryMessage(tier service.Tier, resetTime time.Time) string {
	hours := int(math.Ceil(time.Until(resetTime).Hours()))
	if hours < 1 {
		hours = 1
	}
	plural := ""
	if hours != 1 {
		plural = "s"
	}
	return fmt.Sprintf(
		"You've reached the limit of %d videos per %d hours. Please try again in %d hour%s or upgrade to Pro for unlimited access.",
		tier.MaxRequests, int(tier.Window.Hours()), hours, plural)
}

func toRateLimitInfo(result service.RateLimitResult) rateLimitInfo {
	info := rateLimitInfo{
		Remaining: result.Remaining,
		Unlimited: result.Remaining < 0,
	}
	if !result.ResetTime.IsZero() && !info.Unlimited {
		info.ResetAt = result.ResetTime.UTC().Format(time.RFC3339)
	}
	return info
}
