package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/pkg/requestid"
)

func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			switch {
			case errors.Is(err, models.ErrNotFound):
				he = echo.NewHTTPError(http.StatusNotFound, "product not found")
			default:
				fields := []zap.Field{zap.Error(err)}
				if id, ok := requestid.FromContext(c.Request().Context()); ok {
					fields = append(fields, zap.String("request_id", id))
				}
				log.Error("request failed", fields...)
				he = &echo.HTTPError{
					Code:    http.StatusInternalServerError,
					Message: http.StatusText(http.StatusInternalServerError),
				}
			}
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(he.Code)
			} else {
				err = c.JSON(he.Code, he)
			}
			if err != nil {
				log.Error("failed to write error response", zap.Error(err))
			}
		}
	}
}
