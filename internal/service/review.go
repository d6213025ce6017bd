package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID, bookID uint, rating int, content string) (*model.Review, error)
	GetReviewsByBook(ctx context.Context, bookID uint) ([]*model.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID uint) error
}

type reviewServiceImpl struct {
	reviews repository.ReviewRepository
	books   repository.BookRepository
}

func NewReviewService(reviews repository.ReviewRepository, books repository.BookRepository) ReviewService {
	return &reviewServiceImpl{reviews: reviews, books: books}
}

func (s *reviewServiceImpl) CreateReview(ctx context.Context, userID, bookID uint, rating int, content string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.New(apperror.ErrValidation, "rating must be between 1 and 5")
	}
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("load book: %w", err)
	}
	if _, err := s.reviews.FindByUserAndBook(ctx, userID, bookID); err == nil {
		return nil, apperror.New(apperror.ErrDuplicate, "book already reviewed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := &model.Review{
		UserID:        userID,
		BookID:        bookID,
		Rating:        rating,
		ReviewContent: content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *reviewServiceImpl) GetReviewsByBook(ctx context.Context, bookID uint) ([]*model.Review, error) {
	return s.reviews.FindByBook(ctx, bookID)
}

func (s *reviewServiceImpl) DeleteReview(ctx context.Context, reviewID, userID uint) error {
	affected, err := s.reviews.DeleteByIDAndUser(ctx, reviewID, userID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
