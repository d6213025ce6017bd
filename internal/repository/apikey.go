package repository

import (
	"context"

	"gorm.io/gorm"

	"book-bazaar/internal/model"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, key *model.ApiKey) error
	FindActiveByUser(ctx context.Context, userID uint) (*model.ApiKey, error)
	FindActiveByKey(ctx context.Context, key string) (*model.ApiKey, error)
	DeleteActiveByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
}

type apiKeyRepoImpl struct {
	db *gorm.DB
}

func NewApiKeyRepository(db *gorm.DB) ApiKeyRepository {
	return &apiKeyRepoImpl{db: db}
}

func (r *apiKeyRepoImpl) Create(ctx context.Context, tx *gorm.DB, key *model.ApiKey) error {
	return tx.WithContext(ctx).Create(key).Error
}

func (r *apiKeyRepoImpl) FindActiveByUser(ctx context.Context, userID uint) (*model.ApiKey, error) {
	var key model.ApiKey
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&key).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *apiKeyRepoImpl) FindActiveByKey(ctx context.Context, key string) (*model.ApiKey, error) {
	var rec model.ApiKey
	err := r.db.WithContext(ctx).
		Where("api_key = ? AND is_active = ?", key, true).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *apiKeyRepoImpl) DeleteActiveByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
	res := tx.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Delete(&model.ApiKey{})
	return res.RowsAffected, res.Error
}
