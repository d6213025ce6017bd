package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/model"
	"book-bazaar/internal/token"
)

func newGuardedHandler(tokens *token.Service) echo.HandlerFunc {
	return middleware.Auth(tokens)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

func newContext(e *echo.Echo, access, refresh, apiKey string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if access != "" {
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: access})
	}
	if refresh != "" {
		req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: refresh})
	}
	if apiKey != "" {
		req.Header.Set(middleware.ApiKeyHeader, apiKey)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthRequiresAllCredentials(t *testing.T) {
	e := echo.New()
	tokens := token.NewService("a-secret", "r-secret", time.Hour, 24*time.Hour)
	claims := token.Claims{UserID: 42, Email: "u@example.com", Role: model.RoleUser}

	access, err := tokens.Issue(token.KindAccess, claims)
	require.NoError(t, err)
	refresh, err := tokens.Issue(token.KindRefresh, claims)
	require.NoError(t, err)

	handler := newGuardedHandler(tokens)

	cases := []struct {
		name                    string
		access, refresh, apiKey string
	}{
		{"missing access cookie", "", refresh, "key"},
		{"missing refresh cookie", access, "", "key"},
		{"missing api key header", access, refresh, ""},
		{"garbage access token", "garbage", refresh, "key"},
		{"refresh token used as access", refresh, refresh, "key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(e, tc.access, tc.refresh, tc.apiKey)
			assert.ErrorIs(t, handler(c), apperror.ErrUnauthorized)
		})
	}
}

func TestAuthAttachesClaims(t *testing.T) {
	e := echo.New()
	tokens := token.NewService("a-secret", "r-secret", time.Hour, 24*time.Hour)
	claims := token.Claims{UserID: 42, Email: "u@example.com", Role: model.RoleAdmin}

	access, err := tokens.Issue(token.KindAccess, claims)
	require.NoError(t, err)
	refresh, err := tokens.Issue(token.KindRefresh, claims)
	require.NoError(t, err)

	var seenID uint
	var seenRole string
	handler := middleware.Auth(tokens)(func(c echo.Context) error {
		seenID = middleware.UserID(c)
		seenRole, _ = c.Get(middleware.ContextRole).(string)
		return c.NoContent(http.StatusOK)
	})

	c, _ := newContext(e, access, refresh, "key")
	require.NoError(t, handler(c))
	assert.Equal(t, uint(42), seenID)
	assert.Equal(t, model.RoleAdmin, seenRole)
	assert.True(t, middleware.IsAdmin(c))
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	handler := middleware.AdminOnly()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, _ := newContext(e, "", "", "")
	c.Set(middleware.ContextRole, model.RoleUser)
	assert.ErrorIs(t, handler(c), apperror.ErrForbidden)

	c, _ = newContext(e, "", "", "")
	c.Set(middleware.ContextRole, model.RoleAdmin)
	assert.NoError(t, handler(c))
}
