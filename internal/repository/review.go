package repository

import (
	"context"

	"gorm.io/gorm"

	"book-bazaar/internal/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByBook(ctx context.Context, bookID uint) ([]*model.Review, error)
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*model.Review, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{db: db}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) FindByBook(ctx context.Context, bookID uint) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepoImpl) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepoImpl) DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Review{})
	return res.RowsAffected, res.Error
}
