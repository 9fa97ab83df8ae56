package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tubefetch/backend/internal/handler"
	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/service"
	"tubefetch/backend/internal/service/mock"
)

func TestHistoryHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyService := mock.NewMockHistoryService(ctrl)
	h := handler.NewHistoryHandler(historyService)

	duration := 213
	uploader := "Channel"
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	historyService.EXPECT().
		List(gomock.Any(), "u1").
		Return([]model.VideoHistory{{
			ID:           7,
			UserID:       "u1",
			VideoID:      "dQw4w9WgXcQ",
			VideoURL:     "https://youtu.be/dQw4w9WgXcQ",
			Title:        "Song",
			Duration:     &duration,
			Uploader:     &uploader,
			DownloadType: "audio",
			Quality:      "128kbps",
			Format:       "m4a",
			CreatedAt:    created,
		}}, nil)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/api/history", nil)
	c, rec := newTestContext(e, req)
	c.Set(handler.UserIDContextKey, "u1")

	err := h.List(c)
	require.NoError(t, err)

	var resp []handler.HistoryEntryResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Len(t, resp, 1)
	require.Equal(t, int64(7), resp[0].ID)
	require.Equal(t, "Song", resp[0].Title)
	require.Equal(t, "2025-06-01T12:00:00Z", resp[0].CreatedAt)
	require.NotNil(t, resp[0].Duration)
	require.Equal(t, 213, *resp[0].Duration)
}

func TestHistoryHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyService := mock.NewMockHistoryService(ctrl)
	h := handler.NewHistoryHandler(historyService)

	historyService.EXPECT().Delete(gomock.Any(), "u1", int64(7)).Return(nil)

	e := newTestEcho()
	req := newJSONRequest(http.MethodDelete, "/api/history/7", nil)
	c, rec := newTestContext(e, req)
	c.Set(handler.UserIDContextKey, "u1")
	setPathParams(c, map[string]string{"id": "7"})

	err := h.Delete(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHistoryHandler_Delete_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := handler.NewHistoryHandler(mock.NewMockHistoryService(ctrl))

	e := newTestEcho()
	req := newJSONRequest(http.MethodDelete, "/api/history/abc", nil)
	c, rec := newTestContext(e, req)
	setPathParams(c, map[string]string{"id": "abc"})

	err := h.Delete(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandler_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyService := mock.NewMockHistoryService(ctrl)
	h := handler.NewHistoryHandler(historyService)

	historyService.EXPECT().Delete(gomock.Any(), "u1", int64(9)).Return(service.ErrNotFound)

	e := newTestEcho()
	req := newJSONRequest(http.MethodDelete, "/api/history/9", nil)
	c, rec := newTestContext(e, req)
	c.Set(handler.UserIDContextKey, "u1")
	setPathParams(c, map[string]string{"id": "9"})

	err := h.Delete(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryHandler_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyService := mock.NewMockHistoryService(ctrl)
	h := handler.NewHistoryHandler(historyService)

	historyService.EXPECT().Clear(gomock.Any(), "u1").Return(nil)

	e := newTestEcho()
	req := newJSONRequest(http.MethodDelete, "/api/history", nil)
	c, rec := newTestContext(e, req)
	c.Set(handler.UserIDContextKey, "u1")

	err := h.Clear(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
