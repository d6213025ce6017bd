package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type BookService interface {
	CreateBook(ctx context.Context, userID uint, req dto.BookRequest) (*model.Book, error)
	GetBooks(ctx context.Context, page, limit int) ([]*model.Book, int64, int, int, error)
	GetBookByID(ctx context.Context, id uint) (*model.Book, error)
	UpdateBook(ctx context.Context, id uint, req dto.BookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

type bookServiceImpl struct {
	books repository.BookRepository
}

func NewBookService(books repository.BookRepository) BookService {
	return &bookServiceImpl{books: books}
}

func validateBookRequest(req dto.BookRequest) error {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Author == "" {
		missing = append(missing, "author")
	}
	if req.Genre == "" {
		missing = append(missing, "genre")
	}
	if req.Publisher == "" {
		missing = append(missing, "publisher")
	}
	if req.Format == "" {
		missing = append(missing, "format")
	}
	if req.Isbn == "" {
		missing = append(missing, "isbn")
	}
	if len(missing) > 0 {
		return apperror.New(apperror.ErrValidation, "required fields are missing", missing...)
	}
	if !model.ValidBookFormat(req.Format) {
		return apperror.Newf(apperror.ErrValidation, "unknown book format %q", req.Format)
	}
	if req.Price.IsNegative() {
		return apperror.New(apperror.ErrValidation, "price must not be negative")
	}
	if req.Stock < 0 {
		return apperror.New(apperror.ErrValidation, "stock must not be negative")
	}
	return nil
}

func (s *bookServiceImpl) CreateBook(ctx context.Context, userID uint, req dto.BookRequest) (*model.Book, error) {
	if err := validateBookRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.books.FindByIsbn(ctx, req.Isbn); err == nil {
		return nil, apperror.New(apperror.ErrDuplicate, "isbn already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check isbn: %w", err)
	}

	book := &model.Book{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Genre:       req.Genre,
		Series:      req.Series,
		Publisher:   req.Publisher,
		Format:      req.Format,
		Price:       req.Price,
		Stock:       req.Stock,
		Isbn:        req.Isbn,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		UserID:      userID,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// GetBooks returns a page of active books plus the resolved page/limit.
func (s *bookServiceImpl) GetBooks(ctx context.Context, page, limit int) ([]*model.Book, int64, int, int, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	books, total, err := s.books.List(ctx, page, limit)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("list books: %w", err)
	}
	return books, total, page, limit, nil
}

func (s *bookServiceImpl) GetBookByID(ctx context.Context, id uint) (*model.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("load book: %w", err)
	}
	return book, nil
}

func (s *bookServiceImpl) UpdateBook(ctx context.Context, id uint, req dto.BookRequest) (*model.Book, error) {
	if err := validateBookRequest(req); err != nil {
		return nil, err
	}
	book, err := s.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	book.Title = req.Title
	book.Description = req.Description
	book.Author = req.Author
	book.Genre = req.Genre
	book.Series = req.Series
	book.Publisher = req.Publisher
	book.Format = req.Format
	book.Price = req.Price
	book.Stock = req.Stock
	book.Isbn = req.Isbn
	book.ImageURL = req.ImageURL
	if err := s.books.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	return book, nil
}

// DeleteBook soft-deletes: the row stays for order history, but the book
// disappears from listings and can no longer be ordered.
func (s *bookServiceImpl) DeleteBook(ctx context.Context, id uint) error {
	affected, err := s.books.Deactivate(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate book: %w", err)
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
