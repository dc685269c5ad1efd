// Package app assembles the application graph: configuration, logging, the
// selected catalog backend, the product store, and the HTTP surface.
package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
	"github.com/sneakerfitai/sneakerfitai/internal/llm"
	"github.com/sneakerfitai/sneakerfitai/internal/server"
	"github.com/sneakerfitai/sneakerfitai/internal/usecase"
)

// New builds the fx application with the shared providers plus any options
// a command attaches, such as fx.Invoke(server.StartServer) or
// fx.Populate(&store).
func New(opts ...fx.Option) *fx.App {
	conf := config.MustLoad()
	log := newLogger(conf)

	log.Debug("config loaded",
		zap.String("backend", conf.Catalog.Backend),
		zap.Int("page_size", conf.Catalog.PageSize),
	)
	if conf.Catalog.Backend == config.BackendAPI && conf.API.IsPlaceholder() {
		log.Warn("API_BASE_URL is not configured; requests will hit the placeholder endpoint and the catalog will stay empty",
			zap.String("base_url", conf.API.BaseURL),
		)
	}

	base := []fx.Option{
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log,
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newCatalog,
			newPublisher,
			newStore,

			llm.NewAnalyzer,

			usecase.NewProductUsecase,
			server.NewController,
		),
		fx.Supply(conf, log),
	}

	return fx.New(append(base, opts...)...)
}

func newLogger(conf *config.Config) *zap.Logger {
	var zapConfig zap.Config
	if conf.Log.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	log, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(log)
	return log
}
