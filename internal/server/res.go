package server

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/clipshelf/clipshelf/internal/usecase"
)

type Meta struct {
	Total int `json:"total"`
}

type Res struct {
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// errJSON maps the core failure taxonomy onto HTTP statuses.
func errJSON(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		code = 404
	case errors.Is(err, usecase.ErrForbidden):
		code = 403
	case errors.Is(err, usecase.ErrConflict):
		code = 409
	case errors.Is(err, usecase.ErrDecode):
		code = 400
	default:
		code = 500
	}
	return ctx.JSON(code, map[string]string{"error": err.Error()})
}
