package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/dto"
	"book-bazaar/internal/model"
)

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, dto.OK(status, data, message))
}

func bindErr(message string) error {
	return apperror.New(apperror.ErrValidation, message)
}

func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperror.Newf(apperror.ErrValidation, "invalid %s", name)
	}
	return uint(v), nil
}

func userResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		UserName:        u.UserName,
		FullName:        u.FullName,
		Phone:           u.Phone,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
	}
}
