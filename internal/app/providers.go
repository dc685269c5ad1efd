package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
	"github.com/sneakerfitai/sneakerfitai/internal/events"
	"github.com/sneakerfitai/sneakerfitai/internal/llm"
	"github.com/sneakerfitai/sneakerfitai/internal/repo"
	"github.com/sneakerfitai/sneakerfitai/internal/repo/boltstore"
	"github.com/sneakerfitai/sneakerfitai/internal/repo/memstore"
	"github.com/sneakerfitai/sneakerfitai/internal/repo/mongostore"
	"github.com/sneakerfitai/sneakerfitai/internal/repo/restapi"
	"github.com/sneakerfitai/sneakerfitai/internal/store"
)

// newCatalog builds the backend selected by CATALOG_BACKEND and ties its
// resources to the application lifecycle.
func newCatalog(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (repo.Catalog, error) {
	switch cfg.Catalog.Backend {
	case config.BackendAPI:
		return restapi.NewClient(cfg.API.BaseURL), nil

	case config.BackendMemory:
		return memstore.New(), nil

	case config.BackendFile:
		st, err := boltstore.Open(cfg.File.Path, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return st.Close()
			},
		})
		return st, nil

	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := mongostore.NewConnection(ctx, cfg.Database.URI, cfg.Database.Database)
		if err != nil {
			return nil, fmt.Errorf("init mongo client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return db.Client.Ping(ctx, nil)
			},
			OnStop: func(ctx context.Context) error {
				return db.Close(ctx)
			},
		})
		return mongostore.New(db), nil

	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	publisher, err := events.NewPublisher(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

func newStore(cfg *config.Config, catalog repo.Catalog, analyzer llm.Analyzer, log *zap.Logger) *store.Store {
	return store.New(catalog, analyzer, cfg.Catalog.PageSize, log)
}
