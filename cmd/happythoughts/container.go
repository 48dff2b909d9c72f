package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/happythoughts/happythoughts/internal/config"
	httpapp "github.com/happythoughts/happythoughts/internal/http"
	"github.com/happythoughts/happythoughts/internal/logging"
	"github.com/happythoughts/happythoughts/internal/store"
	"github.com/happythoughts/happythoughts/internal/store/mongodb"
	"github.com/happythoughts/happythoughts/internal/store/postgres"
	"github.com/happythoughts/happythoughts/internal/store/sqlite"
)

// BuildContainer wires the server graph. load supplies the configuration so
// tests can run the graph without touching the environment.
func BuildContainer(load func() config.Config) (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		load,
		ProvideLogger,
		ProvideStore,
		ProvideServer,
		ProvideHTTPServer,
	}
	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			return nil, fmt.Errorf("provide %T: %w", p, err)
		}
	}
	return container, nil
}

func ProvideLogger(cfg config.Config) *logrus.Logger {
	return logging.New(cfg.Log)
}

// ProvideStore opens the backend named by cfg.Store. The caller owns the
// returned handle and must Close it.
func ProvideStore(cfg config.Config, logger *logrus.Logger) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	var (
		st  store.Store
		err error
	)
	switch cfg.Store {
	case config.StoreMongo:
		st, err = mongodb.Open(ctx, cfg.MongoURL)
	case config.StoreSQLite:
		st, err = sqlite.Open(cfg.SQLitePath)
	case config.StorePostgres:
		st, err = postgres.Open(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store %q (want %s, %s or %s)", cfg.Store, config.StoreMongo, config.StoreSQLite, config.StorePostgres)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	logger.WithField("store", cfg.Store).Info("store connected")
	return st, nil
}

func ProvideServer(st store.Store, cfg config.Config, logger *logrus.Logger) *httpapp.Server {
	return httpapp.NewServer(st, cfg.FeedLimit, logger)
}

func ProvideHTTPServer(cfg config.Config, server *httpapp.Server) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
