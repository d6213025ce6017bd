package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
	"book-bazaar/internal/service"
)

type orderFixture struct {
	db     *gorm.DB
	orders service.OrderService
	books  repository.BookRepository

	userID    uint
	addressID uint
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newTestDB(t)
	books := repository.NewBookRepository(db)
	orders := service.NewOrderService(db, repository.NewOrderRepository(db), books, repository.NewAddressRepository(db))

	user := model.User{
		Email:           "buyer@example.com",
		UserName:        "buyer",
		FullName:        "Book Buyer",
		Password:        "hash",
		Role:            model.RoleUser,
		IsEmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	address := model.Address{
		UserID:       user.ID,
		AddressLine1: "1 Checkout Lane",
		City:         "Booktown",
		State:        "Fiction",
		Pincode:      "560001",
		Country:      "India",
		IsDefault:    true,
	}
	require.NoError(t, db.Create(&address).Error)

	return &orderFixture{db: db, orders: orders, books: books, userID: user.ID, addressID: address.ID}
}

func (f *orderFixture) seedBook(t *testing.T, isbn string, price int64, stock int, active bool) uint {
	t.Helper()
	book := model.Book{
		Title:       "Title " + isbn,
		Description: "desc",
		Author:      "Author",
		Genre:       "Genre",
		Publisher:   "Publisher",
		Format:      model.FormatPaperBack,
		Price:       decimal.NewFromInt(price),
		Stock:       stock,
		Isbn:        isbn,
		IsActive:    active,
		UserID:      f.userID,
	}
	require.NoError(t, f.db.Create(&book).Error)
	return book.BookID
}

func TestCreateOrderRequiresBooks(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.orders.CreateOrder(context.Background(), f.userID, f.addressID, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	f := newOrderFixture(t)
	b1 := f.seedBook(t, "isbn-1", 100, 5, true)

	_, err := f.orders.CreateOrder(context.Background(), f.userID, f.addressID+99, []uint{b1})
	assert.ErrorIs(t, err, apperror.ErrInvalidAddress)
}

func TestCreateOrderFailsWhenAnyBookUnavailable(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	inStock := f.seedBook(t, "isbn-1", 100, 3, true)
	soldOut := f.seedBook(t, "isbn-2", 250, 0, true)

	_, err := f.orders.CreateOrder(ctx, f.userID, f.addressID, []uint{inStock, soldOut})
	require.ErrorIs(t, err, apperror.ErrUnavailableItems)

	// no partial fulfillment: nothing was written, nothing was decremented
	var orderCount int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	book, err := f.books.FindByID(ctx, inStock)
	require.NoError(t, err)
	assert.Equal(t, 3, book.Stock)
}

func TestCreateOrderRejectsInactiveBook(t *testing.T) {
	f := newOrderFixture(t)
	inactive := f.seedBook(t, "isbn-1", 100, 5, false)

	_, err := f.orders.CreateOrder(context.Background(), f.userID, f.addressID, []uint{inactive})
	assert.ErrorIs(t, err, apperror.ErrUnavailableItems)
}

func TestCreateOrderRejectsUnknownBook(t *testing.T) {
	f := newOrderFixture(t)
	b1 := f.seedBook(t, "isbn-1", 100, 5, true)

	_, err := f.orders.CreateOrder(context.Background(), f.userID, f.addressID, []uint{b1, b1 + 99})
	assert.ErrorIs(t, err, apperror.ErrUnavailableItems)
}

func TestCreateOrderComputesTotalsAndDecrementsStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	b1 := f.seedBook(t, "isbn-1", 100, 3, true)
	b2 := f.seedBook(t, "isbn-2", 250, 1, true)

	order, err := f.orders.CreateOrder(ctx, f.userID, f.addressID, []uint{b1, b2})
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(350)), "totalAmount = %s", order.TotalAmount)
	assert.True(t, order.FinalAmount.Equal(decimal.NewFromInt(350)), "finalAmount = %s", order.FinalAmount)
	assert.True(t, order.DiscountAmount.IsZero())
	assert.Equal(t, model.OrderStatusPending, order.Status)

	require.Len(t, order.OrderItems, 2)
	for _, item := range order.OrderItems {
		assert.Equal(t, 1, item.Quantity)
		assert.True(t, item.TotalPrice.Equal(item.UnitPrice))
	}

	one, err := f.books.FindByID(ctx, b1)
	require.NoError(t, err)
	assert.Equal(t, 2, one.Stock)
	two, err := f.books.FindByID(ctx, b2)
	require.NoError(t, err)
	assert.Equal(t, 0, two.Stock)

	// the last copy of b2 is gone; the same order again must fail whole
	_, err = f.orders.CreateOrder(ctx, f.userID, f.addressID, []uint{b1, b2})
	assert.ErrorIs(t, err, apperror.ErrUnavailableItems)
}

func TestGetOrderByIDEnforcesOwnership(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	b1 := f.seedBook(t, "isbn-1", 100, 3, true)

	order, err := f.orders.CreateOrder(ctx, f.userID, f.addressID, []uint{b1})
	require.NoError(t, err)

	_, err = f.orders.GetOrderByID(ctx, order.ID, f.userID, false)
	assert.NoError(t, err)

	_, err = f.orders.GetOrderByID(ctx, order.ID, f.userID+1, false)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// admins can read any order
	_, err = f.orders.GetOrderByID(ctx, order.ID, f.userID+1, true)
	assert.NoError(t, err)

	_, err = f.orders.GetOrderByID(ctx, order.ID+99, f.userID, false)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetUserOrders(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	b1 := f.seedBook(t, "isbn-1", 100, 5, true)
	b2 := f.seedBook(t, "isbn-2", 250, 5, true)

	_, err := f.orders.CreateOrder(ctx, f.userID, f.addressID, []uint{b1})
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(ctx, f.userID, f.addressID, []uint{b1, b2})
	require.NoError(t, err)

	orders, err := f.orders.GetUserOrders(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// newest first, with items preloaded
	assert.Len(t, orders[0].OrderItems, 2)
	assert.Len(t, orders[1].OrderItems, 1)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	b1 := f.seedBook(t, "isbn-1", 100, 3, true)

	order, err := f.orders.CreateOrder(ctx, f.userID, f.addressID, []uint{b1})
	require.NoError(t, err)

	require.ErrorIs(t, f.orders.UpdateOrderStatus(ctx, order.ID, "TELEPORTED"), apperror.ErrValidation)
	require.ErrorIs(t, f.orders.UpdateOrderStatus(ctx, order.ID+99, model.OrderStatusShipped), apperror.ErrNotFound)

	require.NoError(t, f.orders.UpdateOrderStatus(ctx, order.ID, model.OrderStatusConfirmed))
	got, err := f.orders.GetOrderByID(ctx, order.ID, f.userID, false)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)
}
