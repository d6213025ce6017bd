package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"book-bazaar/internal/client"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/service"
	"book-bazaar/internal/token"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
// The DSN is keyed by test name so pooled connections share one database
// without leaking state between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, client.AutoMigrate(db))
	return db
}

func newTokenService() *token.Service {
	return token.NewService("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
}

// mailRecorder collects published mail jobs instead of delivering them.
type mailRecorder struct {
	jobs []dto.MailJob
}

func (m *mailRecorder) Publish(_ context.Context, job dto.MailJob) error {
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *mailRecorder) last(t *testing.T) dto.MailJob {
	t.Helper()
	require.NotEmpty(t, m.jobs)
	return m.jobs[len(m.jobs)-1]
}

type authFixture struct {
	db      *gorm.DB
	auth    service.AuthService
	users   repository.UserRepository
	apiKeys repository.ApiKeyRepository
	tokens  *token.Service
	mail    *mailRecorder
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	apiKeys := repository.NewApiKeyRepository(db)
	addresses := repository.NewAddressRepository(db)
	tokens := newTokenService()
	rec := &mailRecorder{}
	auth := service.NewAuthService(db, users, apiKeys, addresses, tokens, rec, 4)
	return &authFixture{db: db, auth: auth, users: users, apiKeys: apiKeys, tokens: tokens, mail: rec}
}

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "reader@example.com",
		UserName: "reader",
		FullName: "Avid Reader",
		Password: "s3cret-password",
		Phone:    "5551234567",
		Address: dto.AddressRequest{
			AddressLine1: "12 Shelf Street",
			City:         "Booktown",
			State:        "Fiction",
			Pincode:      "560001",
			Country:      "India",
		},
	}
}

// registerVerified registers a user through the real flow and completes email
// verification via the mailed token.
func (f *authFixture) registerVerified(t *testing.T, req dto.RegisterRequest) uint {
	t.Helper()
	ctx := context.Background()
	user, err := f.auth.Register(ctx, req)
	require.NoError(t, err)
	require.NoError(t, f.auth.VerifyEmail(ctx, f.mail.last(t).Token))
	return user.ID
}
