package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"book-bazaar/internal/dto"
	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"
)

type BookHandler struct {
	books service.BookService
	rdb   *redis.Client
}

func NewBookHandler(books service.BookService, rdb *redis.Client) *BookHandler {
	return &BookHandler{books: books, rdb: rdb}
}

func (h *BookHandler) flush(c echo.Context) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	middleware.FlushCache(ctx, h.rdb)
}

func (h *BookHandler) Create(c echo.Context) error {
	var req dto.BookRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	book, err := h.books.CreateBook(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	h.flush(c)
	return respond(c, http.StatusCreated, book, "book created")
}

func (h *BookHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	books, total, page, limit, err := h.books.GetBooks(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.BookListResponse{
		Books:      books,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
	}, "books")
}

func (h *BookHandler) GetByID(c echo.Context) error {
	id, err := paramUint(c, "bookId")
	if err != nil {
		return err
	}
	book, err := h.books.GetBookByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, book, "book")
}

func (h *BookHandler) Update(c echo.Context) error {
	id, err := paramUint(c, "bookId")
	if err != nil {
		return err
	}
	var req dto.BookRequest
	if err := c.Bind(&req); err != nil {
		return bindErr("invalid request body")
	}
	book, err := h.books.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	h.flush(c)
	return respond(c, http.StatusOK, book, "book updated")
}

func (h *BookHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "bookId")
	if err != nil {
		return err
	}
	if err := h.books.DeleteBook(c.Request().Context(), id); err != nil {
		return err
	}
	h.flush(c)
	return respond(c, http.StatusOK, nil, "book deleted")
}
