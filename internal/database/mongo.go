package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongo establishes a MongoDB client and verifies it with a ping. The
// whole attempt is bounded by timeout.
//
// Typical usage:
//
//	client, err := database.NewMongo(ctx, cfg.MongoURI, cfg.ConnectTimeout())
//	if err != nil { … }
//	defer database.Disconnect(client, cfg.ConnectTimeout())
func NewMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout / 2).
		SetAppName("repo-insights")

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Disconnect in case of ping failure to avoid leaking sockets.
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// Disconnect closes client within timeout. A nil client is a no-op.
func Disconnect(client *mongo.Client, timeout time.Duration) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// Status reports "connected", "error" or "not_configured" for client.
func Status(ctx context.Context, client *mongo.Client) string {
	if client == nil {
		return "not_configured"
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return "error"
	}
	return "connected"
}
