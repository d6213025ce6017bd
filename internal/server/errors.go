package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"book-bazaar/internal/apperror"
	"book-bazaar/internal/dto"
)

// errorHandler maps domain failures to the uniform error envelope. Unknown
// errors surface as a generic 500; the detail stays in the server log.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	var details []string

	if appErr := apperror.From(err); appErr != nil {
		status = appErr.Status
		message = appErr.Message
		details = appErr.Details
	} else {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		} else {
			log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}
	}

	if details == nil {
		details = []string{}
	}
	writeErr := c.JSON(status, dto.ErrorEnvelope{
		StatusCode: status,
		Success:    false,
		Message:    message,
		Errors:     details,
	})
	if writeErr != nil {
		log.Printf("write error response: %v", writeErr)
	}
}
