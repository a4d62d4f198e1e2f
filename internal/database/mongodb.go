package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client handle for the given URI. The server-selection
// timeout bounds every operation that needs a reachable server; zero leaves
// the driver default in place. Caller must call client.Disconnect(ctx).
func Connect(ctx context.Context, uri string, serverSelectionTimeout time.Duration) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(uri)
	if serverSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(serverSelectionTimeout)
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

// Ping issues the no-op liveness command against the primary to confirm the
// handle is usable. It does not retry.
func Ping(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}
