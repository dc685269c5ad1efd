package middleware

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
)

// CORS returns echo middleware that allows cross-origin requests from
// origins matching pattern. The catalog is consumed by browser frontends
// served from other origins.
func CORS(pattern *regexp.Regexp) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			respHeader := c.Response().Header()
			respHeader.Set("Vary", "Origin")
			origin := c.Request().Header.Get("Origin")
			if origin == "" || !pattern.MatchString(origin) {
				return next(c)
			}
			respHeader.Set("Access-Control-Allow-Origin", origin)
			if c.Request().Method == http.MethodOptions {
				respHeader.Set("Access-Control-Allow-Headers", "*, Content-Type")
				respHeader.Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST, DELETE")
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
