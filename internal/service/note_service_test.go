package service

import (
	"context"
	"testing"

	"notesphere-be/internal/dto"
	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (f *fixture) seedTag(t *testing.T, owner bson.ObjectID, name string) *entity.Tag {
	t.Helper()
	tag := &entity.Tag{OwnerId: owner, Name: name}
	require.NoError(t, f.tags.Insert(context.Background(), tag))
	return tag
}

func (f *fixture) tagCount(t *testing.T, owner, tagId bson.ObjectID) int64 {
	t.Helper()
	tag, err := f.tags.FindByIdForOwner(context.Background(), tagId, owner)
	require.NoError(t, err)
	require.NotNil(t, tag)
	return tag.NoteCount
}

func TestNoteCreateIncrementsTagCounters(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	tag := f.seedTag(t, owner, "work")

	res, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "Standup notes",
		Content: "whiteboard photo",
		Tags:    []string{tag.Id.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, "markdown", res.Format)
	assert.Equal(t, []string{tag.Id.Hex()}, res.Tags)

	assert.Equal(t, int64(1), f.tagCount(t, owner, tag.Id))
}

func TestNoteCreateDropsMalformedTagIds(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	tag := f.seedTag(t, owner, "work")

	res, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "t",
		Content: "c",
		Tags:    []string{tag.Id.Hex(), "not-an-id", tag.Id.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{tag.Id.Hex()}, res.Tags)
	assert.Equal(t, int64(1), f.tagCount(t, owner, tag.Id))
}

func TestNoteUpdateAdjustsCountersByDiff(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	work := f.seedTag(t, owner, "work")
	ideas := f.seedTag(t, owner, "ideas")

	created, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "t",
		Content: "c",
		Tags:    []string{work.Id.Hex()},
	})
	require.NoError(t, err)

	newTags := []string{ideas.Id.Hex()}
	_, err = f.noteService.Update(ctx, owner, created.Id, &dto.UpdateNoteRequest{Tags: &newTags})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.tagCount(t, owner, work.Id))
	assert.Equal(t, int64(1), f.tagCount(t, owner, ideas.Id))
}

func TestNoteUpdateWithoutTagsLeavesCounters(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	work := f.seedTag(t, owner, "work")

	created, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "t",
		Content: "c",
		Tags:    []string{work.Id.Hex()},
	})
	require.NoError(t, err)

	title := "renamed"
	updated, err := f.noteService.Update(ctx, owner, created.Id, &dto.UpdateNoteRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, int64(1), f.tagCount(t, owner, work.Id))
}

func TestNoteDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	work := f.seedTag(t, owner, "work")

	created, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "t",
		Content: "c",
		Tags:    []string{work.Id.Hex()},
	})
	require.NoError(t, err)
	noteId, err := bson.ObjectIDFromHex(created.Id)
	require.NoError(t, err)

	collection := &entity.Collection{OwnerId: owner, Name: "Inbox"}
	require.NoError(t, f.collections.Insert(ctx, collection))
	require.NoError(t, f.memberships.Insert(ctx, &entity.CollectionMembership{
		CollectionId: collection.Id,
		NoteId:       noteId,
	}))
	require.NoError(t, f.shares.Insert(ctx, &entity.ShareGrant{
		NoteId:     noteId,
		UserId:     bson.NewObjectID(),
		Permission: entity.PermissionRead,
	}))

	require.NoError(t, f.noteService.Delete(ctx, owner, created.Id))

	assert.Equal(t, int64(0), f.tagCount(t, owner, work.Id))
	memberships, err := f.memberships.FindAllByNote(ctx, noteId)
	require.NoError(t, err)
	assert.Empty(t, memberships)
	grants, err := f.shares.FindAllByNote(ctx, noteId)
	require.NoError(t, err)
	assert.Empty(t, grants)

	_, err = f.noteService.Show(ctx, owner, created.Id)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestNoteDeleteMalformedId(t *testing.T) {
	f := newFixture()
	err := f.noteService.Delete(context.Background(), bson.NewObjectID(), "nope")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidReference))
}

func TestNoteShowThroughGrant(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	reader := bson.NewObjectID()

	created, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	noteId, _ := bson.ObjectIDFromHex(created.Id)

	// Without a grant the note is invisible to the reader.
	_, err = f.noteService.Show(ctx, reader, created.Id)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, f.shares.Insert(ctx, &entity.ShareGrant{
		NoteId:     noteId,
		UserId:     reader,
		Permission: entity.PermissionRead,
	}))

	res, err := f.noteService.Show(ctx, reader, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Id, res.Id)
}

func TestNoteUpdateReadGrantDenied(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	reader := bson.NewObjectID()

	created, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	noteId, _ := bson.ObjectIDFromHex(created.Id)

	require.NoError(t, f.shares.Insert(ctx, &entity.ShareGrant{
		NoteId:     noteId,
		UserId:     reader,
		Permission: entity.PermissionRead,
	}))

	title := "hijack"
	_, err = f.noteService.Update(ctx, reader, created.Id, &dto.UpdateNoteRequest{Title: &title})
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
}

func TestNoteUpdateEditGrantAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	editor := bson.NewObjectID()

	created, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	noteId, _ := bson.ObjectIDFromHex(created.Id)

	require.NoError(t, f.shares.Insert(ctx, &entity.ShareGrant{
		NoteId:     noteId,
		UserId:     editor,
		Permission: entity.PermissionEdit,
	}))

	content := "edited by collaborator"
	res, err := f.noteService.Update(ctx, editor, created.Id, &dto.UpdateNoteRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, res.Content)
	assert.Equal(t, owner.Hex(), res.OwnerId)
}

func TestNoteListCollectionScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	inScope, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "in", Content: "c"})
	require.NoError(t, err)
	_, err = f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "out", Content: "c"})
	require.NoError(t, err)

	collection := &entity.Collection{OwnerId: owner, Name: "Inbox"}
	require.NoError(t, f.collections.Insert(ctx, collection))
	noteId, _ := bson.ObjectIDFromHex(inScope.Id)
	require.NoError(t, f.memberships.Insert(ctx, &entity.CollectionMembership{
		CollectionId: collection.Id,
		NoteId:       noteId,
	}))

	res, err := f.noteService.List(ctx, owner, &dto.ListNotesQuery{CollectionId: collection.Id.Hex()})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "in", res[0].Title)
}

func TestNoteListEmptyCollectionScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	_, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	collection := &entity.Collection{OwnerId: owner, Name: "Empty"}
	require.NoError(t, f.collections.Insert(ctx, collection))

	res, err := f.noteService.List(ctx, owner, &dto.ListNotesQuery{CollectionId: collection.Id.Hex()})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestNoteListMalformedCollectionScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	_, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	res, err := f.noteService.List(ctx, owner, &dto.ListNotesQuery{CollectionId: "not-an-id"})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestNoteListPinnedOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	_, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "pinned", Content: "c", IsPinned: true})
	require.NoError(t, err)
	_, err = f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "plain", Content: "c"})
	require.NoError(t, err)

	res, err := f.noteService.List(ctx, owner, &dto.ListNotesQuery{PinnedOnly: true})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "pinned", res[0].Title)
}

func TestSharedWithMeCarriesPermission(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()
	reader := bson.NewObjectID()

	first, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "a", Content: "c"})
	require.NoError(t, err)
	second, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{Title: "b", Content: "c"})
	require.NoError(t, err)

	firstId, _ := bson.ObjectIDFromHex(first.Id)
	secondId, _ := bson.ObjectIDFromHex(second.Id)
	require.NoError(t, f.shares.Insert(ctx, &entity.ShareGrant{NoteId: firstId, UserId: reader, Permission: entity.PermissionRead}))
	require.NoError(t, f.shares.Insert(ctx, &entity.ShareGrant{NoteId: secondId, UserId: reader, Permission: entity.PermissionEdit}))

	res, err := f.noteService.SharedWithMe(ctx, reader, 0, 0)
	require.NoError(t, err)
	require.Len(t, res, 2)

	byId := map[string]string{}
	for _, n := range res {
		byId[n.Id] = n.Permission
	}
	assert.Equal(t, "read", byId[first.Id])
	assert.Equal(t, "edit", byId[second.Id])
}

func TestSharedWithMeEmpty(t *testing.T) {
	f := newFixture()
	res, err := f.noteService.SharedWithMe(context.Background(), bson.NewObjectID(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, res)
}
