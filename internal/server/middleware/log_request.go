package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LogRequestConfig stores middleware configuration.
type LogRequestConfig struct {
	Logger      *zap.Logger
	Enabled     func(c echo.Context) bool
	ExtraFields func(c echo.Context) []zap.Field
}

// LogRequest emits one structured log line per request, leveled by the
// response status class.
func LogRequest(config LogRequestConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		panic("Logger is required to use LogRequest")
	}
	if config.Enabled == nil {
		config.Enabled = func(echo.Context) bool { return true }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !config.Enabled(c) {
				return next(c)
			}

			start := time.Now()
			req := c.Request()
			res := c.Response()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := make([]zap.Field, 0, 16)
			fields = append(fields,
				zap.Int("status", res.Status),
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()),
				zap.String("real_ip", c.RealIP()),
				zap.String("user_agent", req.UserAgent()),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			)
			if config.ExtraFields != nil {
				fields = append(fields, config.ExtraFields(c)...)
			}

			switch {
			case res.Status >= 500:
				if err != nil {
					fields = append(fields, zap.Error(err))
				}
				config.Logger.Error("http request", fields...)
			case res.Status >= 400:
				config.Logger.Warn("http request", fields...)
			default:
				config.Logger.Info("http request", fields...)
			}

			return err
		}
	}
}
