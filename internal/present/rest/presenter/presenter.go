package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// Conflict reports duplicate participation. Served as 400 so clients handle
// one rejection shape; the message distinguishes it from validation failures.
func Conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func Unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func Forbidden(c echo.Context, msg string) error {
	return c.JSON(http.StatusForbidden, errorResponse{Error: msg})
}

// InternalError logs the cause and hides it from the client in production.
func InternalError(c echo.Context, err error, production bool) error {
	slog.Error(
		"Internal error",
		slog.String("error", err.Error()),
		slog.String("path", c.Path()),
		slog.String("module", "rest"),
	)
	if production {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
