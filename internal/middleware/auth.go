package middleware

import (
	"github.com/labstack/echo/v4"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/model"
	"book-bazaar/internal/token"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	ApiKeyHeader       = "X-Api-Key"
)

// Auth gates protected routes. It requires both session cookies and the API
// key header to be present, verifies the access token, and attaches the
// decoded claims to the request context. The refresh token and API key are
// only checked for presence here; the refresh token is validated against the
// store when it is actually used for renewal.
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access, err := c.Cookie(AccessTokenCookie)
			if err != nil || access.Value == "" {
				return apperror.ErrUnauthorized
			}
			refresh, err := c.Cookie(RefreshTokenCookie)
			if err != nil || refresh.Value == "" {
				return apperror.ErrUnauthorized
			}
			if c.Request().Header.Get(ApiKeyHeader) == "" {
				return apperror.ErrUnauthorized
			}

			claims, err := tokens.Verify(access.Value, token.KindAccess)
			if err != nil {
				return apperror.ErrUnauthorized
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}

// AdminOnly must run after Auth; it rejects non-admin roles.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role != model.RoleAdmin {
				return apperror.ErrForbidden
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c echo.Context) uint {
	id, _ := c.Get(ContextUserID).(uint)
	return id
}

// IsAdmin reports whether the authenticated user has the admin role.
func IsAdmin(c echo.Context) bool {
	role, _ := c.Get(ContextRole).(string)
	return role == model.RoleAdmin
}
