package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/model"
	"book-bazaar/internal/repository"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, userID, orderID uint, method string, isAdmin bool) (*model.Payment, error)
}

type paymentServiceImpl struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository) PaymentService {
	return &paymentServiceImpl{payments: payments, orders: orders}
}

// CreatePayment records a pending payment for an order. Gateway verification
// is a separate, unimplemented path; this only keeps the book-keeping row
// with a receipt id for later correlation.
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, userID, orderID uint, method string, isAdmin bool) (*model.Payment, error) {
	if !model.ValidPaymentMethod(method) {
		return nil, apperror.Newf(apperror.ErrValidation, "unknown payment method %q", method)
	}
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
	if _, err := s.payments.FindByOrder(ctx, orderID); err == nil {
		return nil, apperror.New(apperror.ErrDuplicate, "payment already exists for order")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}

	payment := &model.Payment{
		OrderID:   orderID,
		Status:    model.PaymentStatusPending,
		Method:    method,
		Amount:    order.FinalAmount,
		ReceiptID: "rcpt_" + uuid.NewString(),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}
