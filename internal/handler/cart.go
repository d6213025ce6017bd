package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CartHandler reserves the cart route surface. Cart persistence is not
// implemented; every operation answers 501.
type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

func (h *CartHandler) notImplemented(c echo.Context) error {
	return respond(c, http.StatusNotImplemented, nil, "cart is not implemented")
}

func (h *CartHandler) Get(c echo.Context) error        { return h.notImplemented(c) }
func (h *CartHandler) Clear(c echo.Context) error      { return h.notImplemented(c) }
func (h *CartHandler) AddItem(c echo.Context) error    { return h.notImplemented(c) }
func (h *CartHandler) UpdateItem(c echo.Context) error { return h.notImplemented(c) }
func (h *CartHandler) RemoveItem(c echo.Context) error { return h.notImplemented(c) }
