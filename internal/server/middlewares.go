package server

import (
	"context"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/clipshelf/clipshelf/internal/config"
)

var (
	AppEnv = os.Getenv(config.ENV_KEY_APP_ENV)
)

// AuthMiddleware transforms the request to carry the caller identity from
// the X-User-Id header in downstream context. Verifying that identity is
// owned by the deployment's edge; the core only consumes it.
func (s *Server) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		uid := c.Request().Header.Get(config.HEADER_KEY_X_USER_ID)
		if uid == "" {
			return c.JSON(401, map[string]string{
				"error":   "unauthorized",
				"message": "X-User-Id header is required",
			})
		}

		ctx := context.WithValue(c.Request().Context(), config.CTX_KEY_USER_ID, uid)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
