package repository

import (
	"context"

	"gorm.io/gorm"

	"book-bazaar/internal/model"
)

type AddressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, address *model.Address) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Address, error)
	FindByUser(ctx context.Context, userID uint) ([]*model.Address, error)
	Update(ctx context.Context, tx *gorm.DB, address *model.Address) error
	ClearDefaultForUser(ctx context.Context, tx *gorm.DB, userID uint) error
	Delete(ctx context.Context, id, userID uint) (int64, error)
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{db: db}
}

func (r *addressRepoImpl) Create(ctx context.Context, tx *gorm.DB, address *model.Address) error {
	return tx.WithContext(ctx).Create(address).Error
}

func (r *addressRepoImpl) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepoImpl) FindByUser(ctx context.Context, userID uint) ([]*model.Address, error) {
	var addresses []*model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepoImpl) Update(ctx context.Context, tx *gorm.DB, address *model.Address) error {
	return tx.WithContext(ctx).Save(address).Error
}

func (r *addressRepoImpl) ClearDefaultForUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	return tx.WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func (r *addressRepoImpl) Delete(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Address{})
	return res.RowsAffected, res.Error
}
