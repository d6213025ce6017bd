package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID, addressID uint, bookIDs []uint) (*model.Order, error)
	GetUserOrders(ctx context.Context, userID uint) ([]*model.Order, error)
	GetOrderByID(ctx context.Context, orderID, userID uint, isAdmin bool) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
}

type orderServiceImpl struct {
	db        *gorm.DB
	orders    repository.OrderRepository
	books     repository.BookRepository
	addresses repository.AddressRepository
}

func NewOrderService(
	db *gorm.DB,
	orders repository.OrderRepository,
	books repository.BookRepository,
	addresses repository.AddressRepository,
) OrderService {
	return &orderServiceImpl{db: db, orders: orders, books: books, addresses: addresses}
}

// CreateOrder places an order for one unit of each requested book. Stock
// checks, order/item creation and the conditional decrements all run inside
// one transaction, so a concurrent checkout that exhausts stock rolls this
// order back instead of over-selling.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID, addressID uint, bookIDs []uint) (*model.Order, error) {
	if len(bookIDs) == 0 {
		return nil, apperror.New(apperror.ErrValidation, "bookIds must not be empty")
	}
	if _, err := s.addresses.FindByIDAndUser(ctx, addressID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidAddress
		}
		return nil, fmt.Errorf("lookup address: %w", err)
	}

	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		books, err := s.books.FindAvailableByIDs(ctx, tx, bookIDs)
		if err != nil {
			return fmt.Errorf("load books: %w", err)
		}
		if len(books) != len(bookIDs) {
			return apperror.ErrUnavailableItems
		}

		total := decimal.Zero
		for _, b := range books {
			total = total.Add(b.Price)
		}

		order = &model.Order{
			UserID:      userID,
			AddressID:   addressID,
			Status:      model.OrderStatusPending,
			TotalAmount: total,
			FinalAmount: total,
		}
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		items := make([]*model.OrderItem, len(books))
		for i, b := range books {
			items[i] = &model.OrderItem{
				OrderID:    order.ID,
				BookID:     b.BookID,
				Quantity:   1,
				UnitPrice:  b.Price,
				TotalPrice: b.Price,
			}
		}
		if err := s.orders.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		for _, b := range books {
			affected, err := s.books.DecrementStock(ctx, tx, b.BookID)
			if err != nil {
				return fmt.Errorf("decrement stock for book %d: %w", b.BookID, err)
			}
			if affected == 0 {
				// lost the race on this row; reject the whole order
				return apperror.ErrUnavailableItems
			}
		}
		order.OrderItems = make([]model.OrderItem, len(items))
		for i, it := range items {
			order.OrderItems[i] = *it
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func (s *orderServiceImpl) GetOrderByID(ctx context.Context, orderID, userID uint, isAdmin bool) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.UserID != userID && !isAdmin {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	if !model.ValidOrderStatus(status) {
		return apperror.Newf(apperror.ErrValidation, "unknown order status %q", status)
	}
	affected, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
