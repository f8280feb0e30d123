package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ErrorHandler renders every error as {"message": ...}. Handlers map domain
// errors to echo.HTTPError themselves; anything that escapes unmapped is a
// 500, except bare record-not-found from a read path.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	switch he := err.(type) {
	case *echo.HTTPError:
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	default:
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = http.StatusNotFound
			msg = "resource not found"
		}
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}
