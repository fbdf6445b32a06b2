package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/routeplanner/internal/config"
	"github.com/vanshika/routeplanner/internal/graph"
)

// Open builds the store selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Store.Backend {
	case "", "file":
		return NewFileStore(cfg.Store.Path, cfg.Store.SyncWrites, logger), nil
	case "badger":
		return OpenBadgerStore(BadgerConfig{
			Path:       cfg.Store.Path,
			InMemory:   cfg.Store.BadgerInMemory,
			SyncWrites: cfg.Store.SyncWrites,
			Logger:     logger.With("component", "badger"),
		}, logger)
	case "neo4j":
		client, err := graph.NewNeo4jClient(ctx, graph.OptionsFromConfig(cfg.Graph))
		if err != nil {
			return nil, err
		}
		logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
		return NewGraphStore(client, logger), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
