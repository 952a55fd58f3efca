// Package backend turns a store configuration into an open storage.KV.
package backend

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"taskdesk/internal/config"
	"taskdesk/internal/db"
	"taskdesk/pkg/storage"
	"taskdesk/pkg/task"
)

// Open connects the configured store. Closing the returned KV releases it.
func Open(ctx context.Context, cfg config.StoreConfig) (storage.KV, error) {
	switch cfg.Backend {
	case "", "file":
		return storage.NewFileStore(cfg.Path)
	case "sqlite":
		path := cfg.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "tasks.db")
		}
		return storage.NewSQLiteStore(path)
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		s := storage.NewPgStore(pool)
		if err := s.EnsureTable(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure kv table: %w", err)
		}
		return &pooled{PgStore: s, close: pool.Close}, nil
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// OpenCollection opens the store and loads the task collection from it.
func OpenCollection(ctx context.Context, cfg config.StoreConfig, opts ...task.Option) (*task.Collection, storage.KV, error) {
	kv, err := Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("store: using %s backend", cfg.Backend)
	return task.Open(ctx, task.NewRepository(kv, cfg.Key), opts...), kv, nil
}

// pooled closes the pgx pool that backs a PgStore.
type pooled struct {
	*storage.PgStore
	close func()
}

func (p *pooled) Close() error {
	p.close()
	return nil
}
