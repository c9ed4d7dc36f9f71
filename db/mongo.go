package db

import (
	"ClinicHub/config"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

/*
* Connect to the configured deployment
* Ping the primary so a bad URI fails at startup instead of on the first request
 */
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.MongoTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, wrap("connect", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrap("ping", err)
	}
	return client, nil
}

// HealthChecker pings the deployment for the health endpoint.
type HealthChecker struct {
	client *mongo.Client
}

func NewHealthChecker(client *mongo.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (h *HealthChecker) Ping(ctx context.Context) error {
	return wrap("ping", h.client.Ping(ctx, readpref.Primary()))
}
