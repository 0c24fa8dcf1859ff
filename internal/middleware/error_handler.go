package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tickethub/internal/dto"
)

// ErrorHandler renders uncaught errors as the same JSON envelope the
// handlers use, so clients see one error shape everywhere.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
