package storage

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/eventhive/internal/config"
	"github.com/joshua-takyi/eventhive/internal/connect"
	"github.com/joshua-takyi/eventhive/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoStore owns the client so closing the store disconnects it.
type mongoStore struct {
	*models.MongodbRepo
	client *mongo.Client
}

func (s *mongoStore) Close(ctx context.Context) error {
	return connect.MongoDBDisconnect(s.client)
}

// New opens the event store selected by cfg.Store.
func New(ctx context.Context, cfg *config.Config) (models.EventRepo, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return models.NewMemoryEventRepo(), nil
	case config.StoreMongo:
		client, err := connect.MongoDBConnect(cfg)
		if err != nil {
			return nil, err
		}
		return &mongoStore{
			MongodbRepo: models.MongodbNewRepo(client, cfg.MongoDBName),
			client:      client,
		}, nil
	case config.StorePostgres:
		db, err := connect.PostgresConnect(cfg)
		if err != nil {
			return nil, err
		}
		repo := models.NewGormEventRepo(db)
		if err := repo.Migrate(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, fmt.Errorf("failed to migrate events table: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage type %s", cfg.Store)
	}
}
