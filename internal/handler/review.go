package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"book-bazaar/internal/dto"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(c echo.Context) error {
	bookID, err := paramUint(c, "bookId")
	if err != nil {
		return err
	}
	var req dto.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	review, err := h.reviews.CreateReview(c.Request().Context(), middleware.UserID(c), bookID, req.Rating, req.ReviewContent)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, review, "review created")
}

func (h *ReviewHandler) ListByBook(c echo.Context) error {
	bookID, err := paramUint(c, "bookId")
	if err != nil {
		return err
	}
	reviews, err := h.reviews.GetReviewsByBook(c.Request().Context(), bookID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, reviews, "reviews")
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "reviewId")
	if err != nil {
		return err
	}
	if err := h.reviews.DeleteReview(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "review deleted")
}
