package repository

import (
	"context"

	"gorm.io/gorm"

	"book-bazaar/internal/model"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByIsbn(ctx context.Context, isbn string) (*model.Book, error)
	List(ctx context.Context, page, limit int) ([]*model.Book, int64, error)
	Update(ctx context.Context, book *model.Book) error
	Deactivate(ctx context.Context, id uint) (int64, error)
	FindAvailableByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*model.Book, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
}

type bookRepoImpl struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepoImpl{db: db}
}

func (r *bookRepoImpl) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepoImpl) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepoImpl) FindByIsbn(ctx context.Context, isbn string) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepoImpl) List(ctx context.Context, page, limit int) ([]*model.Book, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Book{}).Where("is_active = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []*model.Book
	err := q.Order("book_id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *bookRepoImpl) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepoImpl) Deactivate(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("book_id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

// FindAvailableByIDs returns the requested books filtered to in-stock, active
// rows. Callers compare the result size against the request to detect
// missing, inactive or out-of-stock ids.
func (r *bookRepoImpl) FindAvailableByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*model.Book, error) {
	var books []*model.Book
	err := tx.WithContext(ctx).
		Where("book_id IN ? AND stock > 0 AND is_active = ?", ids, true).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// DecrementStock conditionally takes one unit of stock. RowsAffected is zero
// when the row no longer has stock, which callers must treat as failure of
// the surrounding transaction.
func (r *bookRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	res := tx.WithContext(ctx).Model(&model.Book{}).
		Where("book_id = ? AND stock > 0", id).
		Update("stock", gorm.Expr("stock - 1"))
	return res.RowsAffected, res.Error
}
