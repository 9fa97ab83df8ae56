package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/service"
)

type HistoryHandler struct {
	history service.HistoryService
}

type historyEntryResponse struct {
	ID           int64   `json:"id"`
	VideoID      string  `json:"videoId"`
	VideoURL     string  `json:"videoUrl"`
	Title        string  `json:"title"`
	Thumbnail    string  `json:"thumbnail,omitempty"`
	Duration     *int    `json:"duration,omitempty"`
	Uploader     *string `json:"uploader,omitempty"`
	DownloadType string  `json:"downloadType"`
	Quality      string  `json:"quality,omitempty"`
	Format       string  `json:"format,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func NewHistoryHandler(history service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) RegisterRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/history", h.List, requireAuth)
	g.DELETE("/history/:id", h.Delete, requireAuth)
	g.DELETE("/history", h.Clear, requireAuth)
}

func (h *HistoryHandler) List(c echo.Context) error {
	userID, _ := c.Get(UserIDContextKey).(string)
	records, err := h.history.List(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}

	response := make([]historyEntryResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toHistoryEntryResponse(record))
	}
	return c.JSON(http.StatusOK, response)
}

func (h *HistoryHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	userID, _ := c.Get(UserIDContextKey).(string)
	if err := h.history.Delete(c.Request().Context(), userID, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HistoryHandler) Clear(c echo.Context) error {
	userID, _ := c.Get(UserIDContextKey).(string)
	if err := h.history.Clear(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toHistoryEntryResponse(record model.VideoHistory) historyEntryResponse {
	return historyEntryResponse{
		ID:           record.ID,
		VideoID:      record.VideoID,
		VideoURL:     record.VideoURL,
		Title:        record.Title,
		Thumbnail:    record.Thumbnail,
		Duration:     record.Duration,
		Uploader:     record.Uploader,
		DownloadType: record.DownloadType,
		Quality:      record.Quality,
		Format:       record.Format,
		CreatedAt:    record.CreatedAt.UTC().Format(time.RFC3339),
	}
}
