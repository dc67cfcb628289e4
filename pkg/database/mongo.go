package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names. Every component addresses the store through these.
const (
	CollUsers       = "users"
	CollNotes       = "notes"
	CollTags        = "tags"
	CollCollections = "collections"
	CollMemberships = "collection_notes"
	CollShares      = "shared_notes"
)

// Mongo is the process-wide store handle: connect before serving,
// disconnect on shutdown. It is constructed once and injected into the
// repositories; nothing reaches for a global.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, url, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (m *Mongo) Database() *mongo.Database {
	return m.db
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the store contract relies on. The unique
// ones back the Conflict semantics of unique-constrained inserts; the text
// index backs free-text note search.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	notes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}}},
	}
	tags := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}
	collections := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}
	shares := []mongo.IndexModel{
		{Keys: bson.D{{Key: "note_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	memberships := []mongo.IndexModel{
		{Keys: bson.D{{Key: "collection_id", Value: 1}, {Key: "note_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	for coll, models := range map[string][]mongo.IndexModel{
		CollUsers:       users,
		CollNotes:       notes,
		CollTags:        tags,
		CollCollections: collections,
		CollShares:      shares,
		CollMemberships: memberships,
	} {
		if _, err := m.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}
