package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"book-bazaar/internal/config"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"
)

type AuthHandler struct {
	auth       service.AuthService
	production bool
	refreshTTL time.Duration
}

func NewAuthHandler(auth service.AuthService, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		production: cfg.Environment.IsProduction(),
		refreshTTL: cfg.Auth.RefreshTokenExpiry,
	}
}

func (h *AuthHandler) sessionCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *AuthHandler) setSession(c echo.Context, access, refresh, apiKey string) {
	c.SetCookie(h.sessionCookie(middleware.AccessTokenCookie, access, h.refreshTTL))
	c.SetCookie(h.sessionCookie(middleware.RefreshTokenCookie, refresh, h.refreshTTL))
	if apiKey != "" {
		c.Response().Header().Set(middleware.ApiKeyHeader, apiKey)
	}
}

func (h *AuthHandler) clearSession(c echo.Context) {
	c.SetCookie(h.sessionCookie(middleware.AccessTokenCookie, "", -time.Second))
	c.SetCookie(h.sessionCookie(middleware.RefreshTokenCookie, "", -time.Second))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, userResponse(user), "registered, verification email sent")
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	if err := h.auth.VerifyEmail(c.Request().Context(), c.Param("token")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "email verified")
}

func (h *AuthHandler) ResendVerificationEmail(c echo.Context) error {
	var req dto.ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	if err := h.auth.ResendVerificationEmail(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "verification email sent")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	resp, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.setSession(c, resp.AccessToken, resp.RefreshToken, resp.ApiKey)
	return respond(c, http.StatusOK, resp, "logged in")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.UserID(c)); err != nil {
		return err
	}
	h.clearSession(c)
	return respond(c, http.StatusOK, nil, "logged out")
}

func (h *AuthHandler) RenewRefreshToken(c echo.Context) error {
	var req dto.RenewTokenRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	presented := req.RefreshToken
	if presented == "" {
		if cookie, err := c.Cookie(middleware.RefreshTokenCookie); err == nil {
			presented = cookie.Value
		}
	}
	pair, err := h.auth.RenewRefreshToken(c.Request().Context(), presented)
	if err != nil {
		return err
	}
	h.setSession(c, pair.AccessToken, pair.RefreshToken, "")
	return respond(c, http.StatusOK, pair, "tokens renewed")
}

func (h *AuthHandler) RotateApiKey(c echo.Context) error {
	key, err := h.auth.RotateApiKey(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	c.Response().Header().Set(middleware.ApiKeyHeader, key)
	return respond(c, http.StatusOK, dto.ApiKeyResponse{ApiKey: key}, "api key rotated")
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "password reset email sent")
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	if err := h.auth.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "password reset")
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	user, err := h.auth.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, userResponse(user), "profile")
}
