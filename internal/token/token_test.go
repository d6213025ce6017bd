package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/token"
)

func newService() *token.Service {
	return token.NewService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc := newService()
	claims := token.Claims{UserID: 42, Email: "reader@example.com", Role: "USER"}

	for _, kind := range []token.Kind{token.KindAccess, token.KindRefresh} {
		raw, err := svc.Issue(kind, claims)
		require.NoError(t, err)
		require.NotEmpty(t, raw)

		got, err := svc.Verify(raw, kind)
		require.NoError(t, err)
		assert.Equal(t, claims, got)
	}
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	svc := newService()
	refresh, err := svc.Issue(token.KindRefresh, token.Claims{UserID: 1, Email: "a@b.c", Role: "USER"})
	require.NoError(t, err)

	// secrets are independent, so a refresh token must not pass as access
	_, err = svc.Verify(refresh, token.KindAccess)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := token.NewService("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	raw, err := svc.Issue(token.KindAccess, token.Claims{UserID: 1, Email: "a@b.c", Role: "USER"})
	require.NoError(t, err)

	_, err = svc.Verify(raw, token.KindAccess)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newService()
	_, err := svc.Verify("not-a-jwt", token.KindAccess)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestIssueUnknownKind(t *testing.T) {
	svc := newService()
	_, err := svc.Issue(token.Kind("session"), token.Claims{UserID: 1})
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	svc := newService()
	claims := token.Claims{UserID: 7, Email: "x@y.z", Role: "USER"}

	first, err := svc.Issue(token.KindRefresh, claims)
	require.NoError(t, err)
	second, err := svc.Issue(token.KindRefresh, claims)
	require.NoError(t, err)

	// rotation depends on consecutive tokens being distinct even within
	// the same second
	assert.NotEqual(t, first, second)
}

func TestNewTemporaryToken(t *testing.T) {
	tmp, err := token.NewTemporaryToken()
	require.NoError(t, err)

	assert.Len(t, tmp.Token, 32) // 16 bytes hex encoded
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), tmp.Expiry, time.Minute)

	other, err := token.NewTemporaryToken()
	require.NoError(t, err)
	assert.NotEqual(t, tmp.Token, other.Token)
}

func TestNewAPIKeyString(t *testing.T) {
	key, err := token.NewAPIKeyString()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestHashRefreshToken(t *testing.T) {
	h1 := token.HashRefreshToken("some-token")
	h2 := token.HashRefreshToken("some-token")
	h3 := token.HashRefreshToken("other-token")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}
