package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID uint `gorm:"primaryKey"`
	// FK → user.id
	UserID uint `gorm:"index;not null"`
	// FK → address.id, must belong to the same user
	AddressID uint   `gorm:"not null"`
	Status    string `gorm:"size:16;index;not null;default:PENDING"`

	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	// finalAmount = totalAmount - discountAmount + shippingAmount + taxAmount
	FinalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	OrderItems []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.id
	OrderID uint `gorm:"index;not null"`
	// FK → book.book_id
	BookID    uint            `gorm:"index;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// totalPrice = unitPrice * quantity
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time
}

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"

	PaymentMethodRazorpay = "RAZORPAY"
	PaymentMethodCOD      = "COD"
	PaymentMethodWallet   = "WALLET"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodRazorpay, PaymentMethodCOD, PaymentMethodWallet:
		return true
	}
	return false
}

type Payment struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.id
	OrderID uint   `gorm:"index;not null"`
	Status  string `gorm:"size:16;index;not null;default:PENDING"` // PENDING, SUCCESS, FAILED
	Method  string `gorm:"size:16;not null"`                       // RAZORPAY, COD, WALLET

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// local receipt id sent to the gateway for correlation
	ReceiptID string `gorm:"size:64;uniqueIndex;not null"`
	// gateway side ids, filled in by verification
	GatewayOrderID   string `gorm:"size:128"`
	GatewayPaymentID string `gorm:"size:128"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
