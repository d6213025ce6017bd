package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"book-bazaar/internal/dto"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"
)

type AddressHandler struct {
	addresses service.AddressService
}

func NewAddressHandler(addresses service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func (h *AddressHandler) Create(c echo.Context) error {
	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	address, err := h.addresses.CreateAddress(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, address, "address created")
}

func (h *AddressHandler) List(c echo.Context) error {
	addresses, err := h.addresses.GetUserAddresses(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, addresses, "addresses")
}

func (h *AddressHandler) Update(c echo.Context) error {
	id, err := paramUint(c, "addressId")
	if err != nil {
		return err
	}
	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	address, err := h.addresses.UpdateAddress(c.Request().Context(), id, middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, address, "address updated")
}

func (h *AddressHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "addressId")
	if err != nil {
		return err
	}
	if err := h.addresses.DeleteAddress(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "address deleted")
}
