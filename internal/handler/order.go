package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"book-bazaar/internal/dto"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	order, err := h.orders.CreateOrder(c.Request().Context(), middleware.UserID(c), req.AddressID, req.BookIDs)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, order, "order created")
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orders.GetUserOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, orders, "orders")
}

func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := paramUint(c, "orderId")
	if err != nil {
		return err
	}
	order, err := h.orders.GetOrderByID(c.Request().Context(), id, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order, "order")
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := paramUint(c, "orderId")
	if err != nil {
		return err
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	if err := h.orders.UpdateOrderStatus(c.Request().Context(), id, req.Status); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "order status updated")
}
