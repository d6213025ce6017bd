package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/service"
)

func newReviewFixture(t *testing.T) (service.ReviewService, uint, uint) {
	t.Helper()
	db := newTestDB(t)
	svc := service.NewReviewService(repository.NewReviewRepository(db), repository.NewBookRepository(db))

	user := model.User{
		Email: "reviewer@example.com", UserName: "reviewer", FullName: "Reviewer",
		Password: "hash", Role: model.RoleUser, IsEmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	book := model.Book{
		Title: "Reviewed", Description: "d", Author: "a", Genre: "g", Publisher: "p",
		Format: model.FormatEBook, Price: decimal.NewFromInt(100), Stock: 1,
		Isbn: "isbn-r", IsActive: true, UserID: user.ID,
	}
	require.NoError(t, db.Create(&book).Error)
	return svc, user.ID, book.BookID
}

func TestCreateReview(t *testing.T) {
	svc, userID, bookID := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, userID, bookID, 0, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = svc.CreateReview(ctx, userID, bookID, 6, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = svc.CreateReview(ctx, userID, bookID+99, 4, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	review, err := svc.CreateReview(ctx, userID, bookID, 4, "solid read")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	// one review per user per book
	_, err = svc.CreateReview(ctx, userID, bookID, 5, "changed my mind")
	assert.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	svc, userID, bookID := newReviewFixture(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, userID, bookID, 5, "great")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteReview(ctx, review.ID, userID+1), apperror.ErrNotFound)
	require.NoError(t, svc.DeleteReview(ctx, review.ID, userID))

	reviews, err := svc.GetReviewsByBook(ctx, bookID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
