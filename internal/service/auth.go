package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/token"
)

// MailPublisher queues templated mails for asynchronous delivery. Account
// creation commits regardless of delivery; the queue makes sending retryable.
type MailPublisher interface {
	Publish(ctx context.Context, job dto.MailJob) error
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error)
	VerifyEmail(ctx context.Context, tokenValue string) error
	ResendVerificationEmail(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userID uint) error
	RenewRefreshToken(ctx context.Context, presented string) (*dto.TokenPairResponse, error)
	RotateApiKey(ctx context.Context, userID uint) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenValue, newPassword string) error
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
}

type authServiceImpl struct {
	db         *gorm.DB
	users      repository.UserRepository
	apiKeys    repository.ApiKeyRepository
	addresses  repository.AddressRepository
	tokens     *token.Service
	mail       MailPublisher
	bcryptCost int
}

func NewAuthService(
	db *gorm.DB,
	users repository.UserRepository,
	apiKeys repository.ApiKeyRepository,
	addresses repository.AddressRepository,
	tokens *token.Service,
	mail MailPublisher,
	bcryptCost int,
) AuthService {
	return &authServiceImpl{
		db:         db,
		users:      users,
		apiKeys:    apiKeys,
		addresses:  addresses,
		tokens:     tokens,
		mail:       mail,
		bcryptCost: bcryptCost,
	}
}

// Register creates the user, its default address, an API key and the pending
// verification token in one transaction, then queues the verification mail.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	var missing []string
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.UserName == "" {
		missing = append(missing, "userName")
	}
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	missing = append(missing, req.Address.MissingFields()...)
	if len(missing) > 0 {
		return nil, apperror.New(apperror.ErrValidation, "required fields are missing", missing...)
	}

	// per-field lookups so the colliding field is reported deterministically
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperror.New(apperror.ErrDuplicate, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.users.FindByUserName(ctx, req.UserName); err == nil {
		return nil, apperror.New(apperror.ErrDuplicate, "username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	verification, err := token.NewTemporaryToken()
	if err != nil {
		return nil, fmt.Errorf("issue verification token: %w", err)
	}
	keyString, err := token.NewAPIKeyString()
	if err != nil {
		return nil, fmt.Errorf("issue api key: %w", err)
	}

	user := &model.User{
		Email:                        req.Email,
		UserName:                     req.UserName,
		FullName:                     req.FullName,
		Password:                     string(hash),
		Phone:                        req.Phone,
		Role:                         model.RoleUser,
		EmailVerificationToken:       &verification.Token,
		EmailVerificationTokenExpiry: &verification.Expiry,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		address := &model.Address{
			UserID:       user.ID,
			AddressLine1: req.Address.AddressLine1,
			AddressLine2: req.Address.AddressLine2,
			City:         req.Address.City,
			State:        req.Address.State,
			Pincode:      req.Address.Pincode,
			Country:      req.Address.Country,
			IsDefault:    true,
		}
		if err := s.addresses.Create(ctx, tx, address); err != nil {
			return fmt.Errorf("create address: %w", err)
		}
		if err := s.apiKeys.Create(ctx, tx, &model.ApiKey{UserID: user.ID, ApiKey: keyString}); err != nil {
			return fmt.Errorf("create api key: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.mail.Publish(ctx, dto.MailJob{
		Kind:     dto.MailKindVerification,
		Email:    user.Email,
		UserName: user.UserName,
		Token:    verification.Token,
	}); err != nil {
		// the account is created; delivery retries from the queue side
		log.Printf("queue verification mail for %s: %v", user.Email, err)
	}

	return user, nil
}

// VerifyEmail moves a pending user to verified. An expired token is cleared
// so a later attempt with the same value reports it as unknown.
func (s *authServiceImpl) VerifyEmail(ctx context.Context, tokenValue string) error {
	if tokenValue == "" {
		return apperror.New(apperror.ErrValidation, "verification token is required")
	}
	user, err := s.users.FindByVerificationToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvalidToken
		}
		return fmt.Errorf("lookup verification token: %w", err)
	}
	if user.EmailVerificationTokenExpiry == nil || time.Now().After(*user.EmailVerificationTokenExpiry) {
		if err := s.users.ClearVerificationToken(ctx, user.ID); err != nil {
			return fmt.Errorf("clear expired verification token: %w", err)
		}
		return apperror.ErrExpiredToken
	}
	if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	return nil
}

func (s *authServiceImpl) ResendVerificationEmail(ctx context.Context, email string) error {
	if email == "" {
		return apperror.New(apperror.ErrValidation, "email is required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if user.IsEmailVerified {
		return apperror.New(apperror.ErrValidation, "email is already verified")
	}
	verification, err := token.NewTemporaryToken()
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}
	if err := s.users.SetVerificationToken(ctx, user.ID, verification.Token, verification.Expiry); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	if err := s.mail.Publish(ctx, dto.MailJob{
		Kind:     dto.MailKindVerification,
		Email:    user.Email,
		UserName: user.UserName,
		Token:    verification.Token,
	}); err != nil {
		log.Printf("queue verification mail for %s: %v", user.Email, err)
	}
	return nil
}

// Login verifies credentials and issues a fresh token pair. Only one refresh
// token is valid per user: logging in elsewhere supersedes the old session.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, apperror.New(apperror.ErrValidation, "email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrUnauthorized, "invalid credentials")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsEmailVerified {
		return nil, apperror.ErrEmailNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperror.New(apperror.ErrUnauthorized, "invalid credentials")
	}

	pair, err := s.issueAndStorePair(ctx, user)
	if err != nil {
		return nil, err
	}

	key, err := s.apiKeys.FindActiveByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "no active api key")
		}
		return nil, fmt.Errorf("lookup api key: %w", err)
	}

	return &dto.LoginResponse{
		User: dto.UserResponse{
			ID:              user.ID,
			Email:           user.Email,
			UserName:        user.UserName,
			FullName:        user.FullName,
			Phone:           user.Phone,
			Role:            user.Role,
			IsEmailVerified: user.IsEmailVerified,
		},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ApiKey:       key.ApiKey,
	}, nil
}

// Logout clears the stored refresh token. The access token is stateless and
// simply expires.
func (s *authServiceImpl) Logout(ctx context.Context, userID uint) error {
	return s.users.SetRefreshToken(ctx, userID, nil)
}

// RenewRefreshToken rotates the session: the presented token must match the
// single stored value, and is superseded by the new pair.
func (s *authServiceImpl) RenewRefreshToken(ctx context.Context, presented string) (*dto.TokenPairResponse, error) {
	if presented == "" {
		return nil, apperror.New(apperror.ErrValidation, "refresh token is required")
	}
	claims, err := s.tokens.Verify(presented, token.KindRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidToken
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	hash := token.HashRefreshToken(presented)
	if user.RefreshToken == nil || *user.RefreshToken != hash {
		// superseded or revoked token presented again
		return nil, apperror.ErrInvalidToken
	}
	pair, err := s.issueAndStorePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// RotateApiKey deletes the active key and creates its replacement in one
// transaction, so readers never observe zero or two active keys.
func (s *authServiceImpl) RotateApiKey(ctx context.Context, userID uint) (string, error) {
	keyString, err := token.NewAPIKeyString()
	if err != nil {
		return "", fmt.Errorf("issue api key: %w", err)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := s.apiKeys.DeleteActiveByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("delete active api key: %w", err)
		}
		if deleted == 0 {
			return apperror.New(apperror.ErrNotFound, "no active api key")
		}
		if err := s.apiKeys.Create(ctx, tx, &model.ApiKey{UserID: userID, ApiKey: keyString}); err != nil {
			return fmt.Errorf("create api key: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return keyString, nil
}

func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperror.New(apperror.ErrValidation, "email is required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	reset, err := token.NewTemporaryToken()
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	if err := s.users.SetForgotPasswordToken(ctx, user.ID, reset.Token, reset.Expiry); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	if err := s.mail.Publish(ctx, dto.MailJob{
		Kind:     dto.MailKindPasswordReset,
		Email:    user.Email,
		UserName: user.UserName,
		Token:    reset.Token,
	}); err != nil {
		log.Printf("queue reset mail for %s: %v", user.Email, err)
	}
	return nil
}

// ResetPassword consumes the temporary token. An expired token is cleared so
// a retry with the same value fails as unknown rather than expired.
func (s *authServiceImpl) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if tokenValue == "" || newPassword == "" {
		return apperror.New(apperror.ErrValidation, "token and new password are required")
	}
	user, err := s.users.FindByForgotPasswordToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvalidToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if user.ForgotPasswordTokenExpiry == nil || time.Now().After(*user.ForgotPasswordTokenExpiry) {
		if err := s.users.ClearForgotPasswordToken(ctx, user.ID); err != nil {
			return fmt.Errorf("clear expired reset token: %w", err)
		}
		return apperror.ErrExpiredToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *authServiceImpl) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *authServiceImpl) issueAndStorePair(ctx context.Context, user *model.User) (*dto.TokenPairResponse, error) {
	claims := token.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}
	access, err := s.tokens.Issue(token.KindAccess, claims)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.Issue(token.KindRefresh, claims)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	hash := token.HashRefreshToken(refresh)
	if err := s.users.SetRefreshToken(ctx, user.ID, &hash); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}
