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

func TestTagCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	_, err := f.tagService.Create(ctx, owner, &dto.CreateTagRequest{Name: "work"})
	require.NoError(t, err)

	_, err = f.tagService.Create(ctx, owner, &dto.CreateTagRequest{Name: "work"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Same name under a different owner is fine.
	_, err = f.tagService.Create(ctx, bson.NewObjectID(), &dto.CreateTagRequest{Name: "work"})
	assert.NoError(t, err)
}

func TestTagRenameToTakenName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	_, err := f.tagService.Create(ctx, owner, &dto.CreateTagRequest{Name: "work"})
	require.NoError(t, err)
	ideas, err := f.tagService.Create(ctx, owner, &dto.CreateTagRequest{Name: "ideas"})
	require.NoError(t, err)

	name := "work"
	_, err = f.tagService.Update(ctx, owner, ideas.Id, &dto.UpdateTagRequest{Name: &name})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Re-asserting the current name is not a rename.
	same := "ideas"
	res, err := f.tagService.Update(ctx, owner, ideas.Id, &dto.UpdateTagRequest{Name: &same})
	require.NoError(t, err)
	assert.Equal(t, "ideas", res.Name)
}

func TestTagDeletePullsFromNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	tag, err := f.tagService.Create(ctx, owner, &dto.CreateTagRequest{Name: "work"})
	require.NoError(t, err)

	note, err := f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "t",
		Content: "c",
		Tags:    []string{tag.Id},
	})
	require.NoError(t, err)

	require.NoError(t, f.tagService.Delete(ctx, owner, tag.Id))

	refreshed, err := f.noteService.Show(ctx, owner, note.Id)
	require.NoError(t, err)
	assert.Empty(t, refreshed.Tags)

	err = f.tagService.Delete(ctx, owner, tag.Id)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestNotesWithTag(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := bson.NewObjectID()

	tag, err := f.tagService.Create(ctx, owner, &dto.CreateTagRequest{Name: "work"})
	require.NoError(t, err)

	_, err = f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title: "tagged", Content: "c", Tags: []string{tag.Id},
	})
	require.NoError(t, err)
	_, err = f.noteService.Create(ctx, owner, &dto.CreateNoteRequest{
		Title: "untagged", Content: "c",
	})
	require.NoError(t, err)

	res, err := f.tagService.NotesWithTag(ctx, owner, tag.Id, 0, 0)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "tagged", res[0].Title)
}
