package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/service"
)

func validBookRequest(isbn string) dto.BookRequest {
	return dto.BookRequest{
		Title:       "The Test Pyramid",
		Description: "A practical guide",
		Author:      "Jane Dev",
		Genre:       "Software",
		Series:      "Craft",
		Publisher:   "Bazaar Press",
		Format:      model.FormatHardCover,
		Price:       decimal.NewFromInt(499),
		Stock:       10,
		Isbn:        isbn,
		ImageURL:    "https://img.example.com/book.png",
	}
}

func newBookService(t *testing.T) (service.BookService, uint) {
	t.Helper()
	db := newTestDB(t)
	admin := model.User{
		Email: "admin@example.com", UserName: "admin", FullName: "Admin",
		Password: "hash", Role: model.RoleAdmin, IsEmailVerified: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	return service.NewBookService(repository.NewBookRepository(db)), admin.ID
}

func TestCreateBookValidation(t *testing.T) {
	svc, adminID := newBookService(t)
	ctx := context.Background()

	req := validBookRequest("isbn-1")
	req.Title = ""
	req.Isbn = ""
	_, err := svc.CreateBook(ctx, adminID, req)
	require.ErrorIs(t, err, apperror.ErrValidation)
	appErr := apperror.From(err)
	assert.Contains(t, appErr.Details, "title")
	assert.Contains(t, appErr.Details, "isbn")

	req = validBookRequest("isbn-1")
	req.Format = "SCROLL"
	_, err = svc.CreateBook(ctx, adminID, req)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	req = validBookRequest("isbn-1")
	req.Price = decimal.NewFromInt(-1)
	_, err = svc.CreateBook(ctx, adminID, req)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateBookDuplicateIsbn(t *testing.T) {
	svc, adminID := newBookService(t)
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, adminID, validBookRequest("isbn-1"))
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, adminID, validBookRequest("isbn-1"))
	assert.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestGetBooksPagination(t *testing.T) {
	svc, adminID := newBookService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.CreateBook(ctx, adminID, validBookRequest(fmt.Sprintf("isbn-%02d", i)))
		require.NoError(t, err)
	}

	// defaults: page 1, limit 10
	books, total, page, limit, err := svc.GetBooks(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, books, 10)
	assert.EqualValues(t, 25, total)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	books, _, _, _, err = svc.GetBooks(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, books, 5)
}

func TestUpdateBook(t *testing.T) {
	svc, adminID := newBookService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, adminID, validBookRequest("isbn-1"))
	require.NoError(t, err)

	req := validBookRequest("isbn-1")
	req.Stock = 3
	req.Price = decimal.NewFromInt(299)
	updated, err := svc.UpdateBook(ctx, book.BookID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(299)))

	_, err = svc.UpdateBook(ctx, book.BookID+99, req)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteBookDeactivates(t *testing.T) {
	svc, adminID := newBookService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, adminID, validBookRequest("isbn-1"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, book.BookID))

	// the row remains for order history but leaves the listing
	got, err := svc.GetBookByID(ctx, book.BookID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	books, total, _, _, err := svc.GetBooks(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Zero(t, total)

	// already deactivated
	assert.ErrorIs(t, svc.DeleteBook(ctx, book.BookID), apperror.ErrNotFound)
}
