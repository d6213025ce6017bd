package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"book-bazaar/internal/dto"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	payment, err := h.payments.CreatePayment(c.Request().Context(), middleware.UserID(c), req.OrderID, req.Method, middleware.IsAdmin(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.PaymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Status:    payment.Status,
		Method:    payment.Method,
		Amount:    payment.Amount,
		ReceiptID: payment.ReceiptID,
		CreatedAt: payment.CreatedAt,
	}, "payment created")
}

// Verify confirms a gateway payment. Gateway integration is out of scope;
// the route exists so clients have a stable surface.
func (h *PaymentHandler) Verify(c echo.Context) error {
	return respond(c, http.StatusNotImplemented, nil, "payment verification not implemented")
}

// Handle processes gateway callbacks. Same stub status as Verify.
func (h *PaymentHandler) Handle(c echo.Context) error {
	return respond(c, http.StatusNotImplemented, nil, "payment handling not implemented")
}
