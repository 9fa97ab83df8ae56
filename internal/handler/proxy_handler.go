package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/service"
)

type ProxyHandler struct {
	proxy service.ProxyService
}

func NewProxyHandler(proxy service.ProxyService) *ProxyHandler {
	return &ProxyHandler{proxy: proxy}
}

func (h *ProxyHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/proxy/thumbnail", h.Thumbnail)
}

func (h *ProxyHandler) Thumbnail(c echo.Context) error {
	imageURL := c.QueryParam("url")
	if imageURL == "" {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	thumbnail, err := h.proxy.FetchThumbnail(c.Request().Context(), imageURL)
	if err != nil {
		return writeServiceError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, thumbnail.ContentType, thumbnail.Data)
}
