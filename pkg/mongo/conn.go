package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"kicharme.com.br/storefront/pkg/global"
)

// Config holds the MongoDB connection settings. An empty URI means the
// service runs on the in-memory repository instead.
type Config struct {
	URI      string `envconfig:"MONGODB_URI"`
	Database string `envconfig:"MONGODB_DATABASE" default:"storefront"`
}

// Enabled reports whether a MongoDB backend is configured.
func (c Config) Enabled() bool {
	return c.URI != ""
}

// Repository is the MongoDB implementation of the catalog persistence and
// user directory capabilities.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects, pings and returns a ready repository.
func New(cfg Config) (*Repository, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("create mongodb client: %w", err)
	}

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Repository{client: client, db: client.Database(cfg.Database)}, nil
}

// Ping verifies the connection, for health checks.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.db.Collection(name)
}
