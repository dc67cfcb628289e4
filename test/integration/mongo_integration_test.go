package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/repository/implementation"
	"notesphere-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMongoConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("Skipping integration test: MONGODB_URL not set")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, url, "notesphere_test")
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect(ctx)

	require.NoError(t, db.EnsureIndexes(ctx))
	t.Log("Successfully connected and ensured indexes")

	t.Run("Note roundtrip with counters", func(t *testing.T) {
		notes := implementation.NewNoteRepository(db.Database())
		tags := implementation.NewTagRepository(db.Database())
		owner := bson.NewObjectID()
		now := time.Now().UTC()

		tag := &entity.Tag{OwnerId: owner, Name: "it-" + bson.NewObjectID().Hex(), CreatedAt: now, UpdatedAt: now}
		require.NoError(t, tags.Insert(ctx, tag))

		note := &entity.Note{
			OwnerId:   owner,
			Title:     "integration",
			Content:   "roundtrip",
			Format:    entity.FormatMarkdown,
			Tags:      []bson.ObjectID{tag.Id},
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, notes.Insert(ctx, note))

		require.NoError(t, tags.IncNoteCounts(ctx, []bson.ObjectID{tag.Id}, 1))
		got, err := tags.FindByIdForOwner(ctx, tag.Id, owner)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(1), got.NoteCount)

		pulled, err := notes.PullTag(ctx, owner, tag.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pulled)

		deleted, err := notes.DeleteByIdForOwner(ctx, note.Id, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = tags.DeleteByIdForOwner(ctx, tag.Id, owner)
		assert.NoError(t, err)
	})

	t.Run("Share grant unique index", func(t *testing.T) {
		shares := implementation.NewShareRepository(db.Database())
		noteId := bson.NewObjectID()
		userId := bson.NewObjectID()
		now := time.Now().UTC()

		first := &entity.ShareGrant{NoteId: noteId, UserId: userId, Permission: entity.PermissionRead, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, shares.Insert(ctx, first))

		dup := &entity.ShareGrant{NoteId: noteId, UserId: userId, Permission: entity.PermissionEdit, CreatedAt: now, UpdatedAt: now}
		err := shares.Insert(ctx, dup)
		assert.Error(t, err)

		_, err = shares.Delete(ctx, noteId, userId)
		assert.NoError(t, err)
	})
}
