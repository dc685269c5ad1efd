package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sneakerfitai/sneakerfitai/pkg/idgen"
	"github.com/sneakerfitai/sneakerfitai/pkg/requestid"
)

// RequestIDConfig stores middleware configuration.
type RequestIDConfig struct {
	// GenerateFunc mints an id when the client did not send one.
	GenerateFunc func() string
}

// RequestID reuses the caller's X-Request-ID or mints one, stores it in the
// request context, and echoes it back in the response header.
func RequestID() echo.MiddlewareFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.GenerateFunc == nil {
		config.GenerateFunc = idgen.Next
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = config.GenerateFunc()
			}

			c.SetRequest(req.WithContext(requestid.NewContext(req.Context(), id)))
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}
