package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names shared by the services, the backup exporter, and the
// access-rule tests.
const (
	InviteesCollection    = "invitees"
	GuestsCollection      = "guests"
	EventsCollection      = "events"
	LoginTokensCollection = "login_tokens"
)

// InitDB connects to MongoDB using MONGO_URI / MONGO_DB and verifies the
// connection. The returned handles are passed by injection to every
// component that needs them; nothing holds a package-level client.
func InitDB() (*mongo.Client, *mongo.Database, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, nil, fmt.Errorf("MONGO_URI environment variable is required")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "wedding"
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the lookup indexes the filtered collection
// accessors rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		InviteesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		GuestsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "inviteeId", Value: 1}}},
		},
		EventsCollection: {
			{Keys: bson.D{{Key: "allGuestsInvited", Value: 1}}},
		},
		LoginTokensCollection: {
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
