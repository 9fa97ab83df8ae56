package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tubefetch/backend/internal/service"
)

// AuthCookieName carries the session token for browser clients.
const AuthCookieName = "tubefetch_token"

const authCookieMaxAge = 7 * 24 * time.Hour

type AuthHandler struct {
	auth service.AuthService
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout)
	g.GET("/auth/me", h.Me, requireAuth)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	resp, err := h.auth.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	setAuthCookie(c, resp.Token)
	return c.JSON(http.StatusOK, toAuthResponse(resp))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	resp, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	setAuthCookie(c, resp.Token)
	return c.JSON(http.StatusOK, toAuthResponse(resp))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get(UserIDContextKey).(string)
	user, err := h.auth.GetUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

func setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(authCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func toAuthResponse(resp *service.AuthResponse) authResponse {
	return authResponse{Token: resp.Token, User: toUserResponse(resp.User)}
}

func toUserResponse(user service.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}
