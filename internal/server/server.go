package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
	pkgmdw "github.com/sneakerfitai/sneakerfitai/internal/server/middleware"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
	log *zap.Logger,
) error {
	corsPattern, err := regexp.Compile(conf.Server.CORSOrigin)
	if err != nil {
		return fmt.Errorf("invalid SERVER_CORS_ORIGIN pattern: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = errorHandler(log)

	logConfig := pkgmdw.LogRequestConfig{
		Logger: log.Named("http"),
		Enabled: func(c echo.Context) bool {
			return c.Request().RequestURI != "/health"
		},
	}

	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(pkgmdw.CORS(corsPattern))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("PANIC RECOVER", zap.Error(err), zap.ByteString("stack", stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)

	api := e.Group("/api")
	api.GET("/products", handler.ListProducts)
	api.POST("/products", handler.CreateProduct)
	api.DELETE("/products/:id", handler.DeleteProduct)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", conf.Server.Addr))
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})

	return nil
}
