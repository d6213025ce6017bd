package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"book-bazaar/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUserName(ctx context.Context, userName string) (*model.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*model.User, error)
	FindByForgotPasswordToken(ctx context.Context, token string) (*model.User, error)
	SetVerificationToken(ctx context.Context, userID uint, token string, expiry time.Time) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	ClearVerificationToken(ctx context.Context, userID uint) error
	SetForgotPasswordToken(ctx context.Context, userID uint, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, userID uint, passwordHash string) error
	ClearForgotPasswordToken(ctx context.Context, userID uint) error
	SetRefreshToken(ctx context.Context, userID uint, tokenHash *string) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{db: db}
}

func (r *userRepoImpl) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	return tx.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepoImpl) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	return r.findOne(ctx, "user_name = ?", userName)
}

func (r *userRepoImpl) FindByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	return r.findOne(ctx, "email_verification_token = ?", token)
}

func (r *userRepoImpl) FindByForgotPasswordToken(ctx context.Context, token string) (*model.User, error) {
	return r.findOne(ctx, "forgot_password_token = ?", token)
}

func (r *userRepoImpl) findOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoImpl) SetVerificationToken(ctx context.Context, userID uint, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"email_verification_token":        token,
			"email_verification_token_expiry": expiry,
		}).Error
}

func (r *userRepoImpl) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_email_verified":               true,
			"email_verification_token":        nil,
			"email_verification_token_expiry": nil,
		}).Error
}

func (r *userRepoImpl) ClearVerificationToken(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"email_verification_token":        nil,
			"email_verification_token_expiry": nil,
		}).Error
}

func (r *userRepoImpl) SetForgotPasswordToken(ctx context.Context, userID uint, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"forgot_password_token":        token,
			"forgot_password_token_expiry": expiry,
		}).Error
}

func (r *userRepoImpl) ResetPassword(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":                     passwordHash,
			"forgot_password_token":        nil,
			"forgot_password_token_expiry": nil,
		}).Error
}

func (r *userRepoImpl) ClearForgotPasswordToken(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"forgot_password_token":        nil,
			"forgot_password_token_expiry": nil,
		}).Error
}

func (r *userRepoImpl) SetRefreshToken(ctx context.Context, userID uint, tokenHash *string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", tokenHash).Error
}
