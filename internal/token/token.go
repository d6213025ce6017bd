// Package token issues and verifies the credential artifacts used by the auth
// flow: signed access/refresh JWTs, random temporary tokens for email
// verification and password reset, and opaque API key strings. Nothing here
// touches storage; persisting issued values is the caller's job.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"book-bazaar/internal/apperror"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims are the identity claims carried by both token kinds.
type Claims struct {
	UserID uint
	Email  string
	Role   string
}

// Service signs and verifies JWTs with independent secrets and TTLs per kind.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) secretFor(kind Kind) ([]byte, time.Duration, bool) {
	switch kind {
	case KindAccess:
		return s.accessSecret, s.accessTTL, true
	case KindRefresh:
		return s.refreshSecret, s.refreshTTL, true
	}
	return nil, 0, false
}

// Issue signs an HS256 JWT of the given kind carrying {id, email, role}.
func (s *Service) Issue(kind Kind, claims Claims) (string, error) {
	secret, ttl, ok := s.secretFor(kind)
	if !ok {
		return "", apperror.Newf(apperror.ErrInvalidToken, "unknown token kind %q", kind)
	}
	now := time.Now().UTC()
	// jti keeps two tokens minted within the same second distinct, which
	// refresh rotation depends on
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return t.SignedString(secret)
}

// Verify parses and validates a token of the given kind and returns its claims.
func (s *Service) Verify(raw string, kind Kind) (Claims, error) {
	secret, _, ok := s.secretFor(kind)
	if !ok {
		return Claims{}, apperror.Newf(apperror.ErrInvalidToken, "unknown token kind %q", kind)
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, apperror.ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperror.ErrInvalidToken
	}
	id, ok := mc["id"].(float64)
	if !ok {
		return Claims{}, apperror.ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	return Claims{UserID: uint(id), Email: email, Role: role}, nil
}

// TemporaryToken is a single-use random value with an explicit expiry, used
// for email verification and password reset links.
type TemporaryToken struct {
	Token  string
	Expiry time.Time
}

// NewTemporaryToken returns a 16-byte hex token valid for one hour.
func NewTemporaryToken() (TemporaryToken, error) {
	raw, err := randomHex(16)
	if err != nil {
		return TemporaryToken{}, err
	}
	return TemporaryToken{Token: raw, Expiry: time.Now().UTC().Add(time.Hour)}, nil
}

// NewAPIKeyString returns a 32-hex-character opaque key. Uniqueness is
// enforced by the store's unique index, not here.
func NewAPIKeyString() (string, error) {
	return randomHex(16)
}

// HashRefreshToken returns the SHA-256 hex digest of a refresh token. Only
// the digest is ever persisted.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
