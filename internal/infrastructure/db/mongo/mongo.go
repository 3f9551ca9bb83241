package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique indexes the application relies on for
// conflict detection. Uniqueness of email, username, telegram id, bookmarks
// and ratings is enforced here, not by application-level locking; a race
// between two concurrent writers surfaces as a duplicate-key conflict.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "telegram_id", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "email_verify_token", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		genresCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "slug", Value: 1}}, Options: unique},
		},
		ratingsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "content_id", Value: 1}}, Options: unique},
		},
		bookmarksCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "content_id", Value: 1}}, Options: unique},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "content_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		commentRatingsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "comment_id", Value: 1}}, Options: unique},
		},
		personRolesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		personsCollection: {
			{Keys: bson.D{{Key: "full_name", Value: 1}}},
		},
		creditsCollection: {
			{Keys: bson.D{{Key: "content_id", Value: 1}}},
			{Keys: bson.D{{Key: "person_id", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
