package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/campus-portal-api/pkg/config"
	"github.com/noah-isme/campus-portal-api/pkg/database"
)

// Backend is an opened document store with its connection lifecycle hooks.
type Backend struct {
	Driver string
	Store  DocumentStore
	Ping   func(ctx context.Context) error
	Close  func(ctx context.Context) error
}

// OpenBackend connects the document store selected by cfg.DocStore.Driver.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.DocStore.Driver {
	case "", config.DocStoreMemory:
		return &Backend{
			Driver: config.DocStoreMemory,
			Store:  NewMemoryStore(),
			Ping:   func(context.Context) error { return nil },
			Close:  func(context.Context) error { return nil },
		}, nil
	case config.DocStorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		store := NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Backend{
			Driver: config.DocStorePostgres,
			Store:  store,
			Ping:   db.PingContext,
			Close:  func(context.Context) error { return db.Close() },
		}, nil
	case config.DocStoreMongo:
		client, db, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver: config.DocStoreMongo,
			Store:  NewMongoStore(db),
			Ping:   func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			Close:  client.Disconnect,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported document store driver %q", cfg.DocStore.Driver)
	}
}
