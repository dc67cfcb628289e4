package service

import (
	"context"
	"testing"

	"notesphere-be/internal/dto"
	"notesphere-be/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (f *fixture) collectionCount(t *testing.T, owner bson.ObjectID, id string) int64 {
	t.Helper()
	cid, err := bson.ObjectIDFromHex(id)
	require.NoError(t, err)
	collection, err := f.collections.FindByIdForOwner(context.Background(), cid, owner)
	require.NoError(t, err)
	require.NotNil(t, collection)
	return collection.NoteCount
}

func TestAddNoteIncrementsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	noteId := f.seedNote(t, owner, "t")

	collection, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox"})
	require.NoError(t, err)

	require.NoError(t, f.collectionService.AddNote(ctx, owner, collection.Id, noteId))
	assert.Equal(t, int64(1), f.collectionCount(t, owner, collection.Id))

	// Re-adding is a no-op; the counter must not move again.
	require.NoError(t, f.collectionService.AddNote(ctx, owner, collection.Id, noteId))
	assert.Equal(t, int64(1), f.collectionCount(t, owner, collection.Id))
}

func TestAddNoteRequiresOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	stranger := bson.NewObjectID()
	noteId := f.seedNote(t, stranger, "theirs")

	collection, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox"})
	require.NoError(t, err)

	// A note owned by someone else reads as missing.
	err = f.collectionService.AddNote(ctx, owner, collection.Id, noteId)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestAddNoteMissingCollection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	noteId := f.seedNote(t, owner, "t")

	err := f.collectionService.AddNote(ctx, owner, bson.NewObjectID().Hex(), noteId)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = f.collectionService.AddNote(ctx, owner, "not-an-id", noteId)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidReference))
}

func TestRemoveNoteDecrements(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	noteId := f.seedNote(t, owner, "t")

	collection, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox"})
	require.NoError(t, err)
	require.NoError(t, f.collectionService.AddNote(ctx, owner, collection.Id, noteId))

	require.NoError(t, f.collectionService.RemoveNote(ctx, owner, collection.Id, noteId))
	assert.Equal(t, int64(0), f.collectionCount(t, owner, collection.Id))

	err = f.collectionService.RemoveNote(ctx, owner, collection.Id, noteId)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateDefaultDemotesPrevious(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	inbox, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, inbox.IsDefault)

	archive, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Archive", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, archive.IsDefault)

	all, err := f.collectionService.GetAll(ctx, owner, 0, 0)
	require.NoError(t, err)

	var defaults []string
	for _, c := range all {
		if c.IsDefault {
			defaults = append(defaults, c.Name)
		}
	}
	assert.Equal(t, []string{"Archive"}, defaults)
}

func TestUpdateToDefaultDemotesPrevious(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	_, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox", IsDefault: true})
	require.NoError(t, err)
	archive, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Archive"})
	require.NoError(t, err)

	setDefault := true
	updated, err := f.collectionService.Update(ctx, owner, archive.Id, &dto.UpdateCollectionRequest{IsDefault: &setDefault})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	all, err := f.collectionService.GetAll(ctx, owner, 0, 0)
	require.NoError(t, err)
	defaults := 0
	for _, c := range all {
		if c.IsDefault {
			defaults++
			assert.Equal(t, "Archive", c.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestUpdateKeepingDefaultDoesNotDemoteSelf(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	inbox, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox", IsDefault: true})
	require.NoError(t, err)

	// Re-asserting the flag on the current holder must not churn it off.
	keep := true
	updated, err := f.collectionService.Update(ctx, owner, inbox.Id, &dto.UpdateCollectionRequest{IsDefault: &keep})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
}

func TestShowWithNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	collection, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox"})
	require.NoError(t, err)
	member := f.seedNote(t, owner, "member")
	f.seedNote(t, owner, "loose")
	require.NoError(t, f.collectionService.AddNote(ctx, owner, collection.Id, member))

	res, err := f.collectionService.ShowWithNotes(ctx, owner, collection.Id, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Inbox", res.Name)
	require.Len(t, res.Notes, 1)
	assert.Equal(t, "member", res.Notes[0].Title)
}

func TestDeleteCollectionKeepsNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	collection, err := f.collectionService.Create(ctx, owner, &dto.CreateCollectionRequest{Name: "Inbox"})
	require.NoError(t, err)
	noteId := f.seedNote(t, owner, "t")
	require.NoError(t, f.collectionService.AddNote(ctx, owner, collection.Id, noteId))

	require.NoError(t, f.collectionService.Delete(ctx, owner, collection.Id))

	_, err = f.collectionService.ShowWithNotes(ctx, owner, collection.Id, 0, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	note, err := f.noteService.Show(ctx, owner, noteId)
	require.NoError(t, err)
	assert.Equal(t, "t", note.Title)
}
