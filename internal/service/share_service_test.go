package service

import (
	"context"
	"testing"
	"time"

	"notesphere-be/internal/dto"
	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (f *fixture) seedUser(t *testing.T, username string) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	user := &entity.User{
		Email:     username + "@example.com",
		Username:  username,
		Role:      entity.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.users.Insert(context.Background(), user))
	return user
}

func (f *fixture) seedNote(t *testing.T, owner bson.ObjectID, title string) string {
	t.Helper()
	res, err := f.noteService.Create(context.Background(), owner, &dto.CreateNoteRequest{
		Title:   title,
		Content: "c",
	})
	require.NoError(t, err)
	return res.Id
}

func TestShareNoteBatchPartialSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	noteId := f.seedNote(t, owner.Id, "shared doc")

	ghost := bson.NewObjectID()
	res, err := f.shareService.ShareNote(ctx, owner.Id, noteId, &dto.ShareNoteRequest{
		UserIds:    []string{alice.Id.Hex(), ghost.Hex(), "garbage", owner.Id.Hex(), bob.Id.Hex()},
		Permission: "edit",
	})
	require.NoError(t, err)

	require.Len(t, res.Granted, 2)
	require.Len(t, res.Rejected, 3)

	reasons := map[string]string{}
	for _, r := range res.Rejected {
		reasons[r.UserId] = r.Reason
	}
	assert.Equal(t, "user not found", reasons[ghost.Hex()])
	assert.Equal(t, "invalid user id", reasons["garbage"])
	assert.Equal(t, "cannot share a note with its owner", reasons[owner.Id.Hex()])

	for _, g := range res.Granted {
		assert.Equal(t, "edit", g.Permission)
	}
}

func TestShareNoteUpsertsExistingGrant(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	noteId := f.seedNote(t, owner.Id, "doc")

	_, err := f.shareService.ShareNote(ctx, owner.Id, noteId, &dto.ShareNoteRequest{
		UserIds:    []string{alice.Id.Hex()},
		Permission: "read",
	})
	require.NoError(t, err)

	res, err := f.shareService.ShareNote(ctx, owner.Id, noteId, &dto.ShareNoteRequest{
		UserIds:    []string{alice.Id.Hex()},
		Permission: "edit",
	})
	require.NoError(t, err)
	require.Len(t, res.Granted, 1)
	assert.Equal(t, "edit", res.Granted[0].Permission)

	nid, _ := bson.ObjectIDFromHex(noteId)
	grants, err := f.shares.FindAllByNote(ctx, nid)
	require.NoError(t, err)
	assert.Len(t, grants, 1)
}

func TestShareNoteDefaultsToRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	noteId := f.seedNote(t, owner.Id, "doc")

	res, err := f.shareService.ShareNote(ctx, owner.Id, noteId, &dto.ShareNoteRequest{
		UserIds: []string{alice.Id.Hex()},
	})
	require.NoError(t, err)
	require.Len(t, res.Granted, 1)
	assert.Equal(t, "read", res.Granted[0].Permission)
}

func TestShareNoteOnlyOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	noteId := f.seedNote(t, owner.Id, "doc")

	_, err := f.shareService.ShareNote(ctx, alice.Id, noteId, &dto.ShareNoteRequest{
		UserIds: []string{alice.Id.Hex()},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
}

func TestShareNoteMissingNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")

	_, err := f.shareService.ShareNote(ctx, owner.Id, bson.NewObjectID().Hex(), &dto.ShareNoteRequest{
		UserIds: []string{bson.NewObjectID().Hex()},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateSharePermission(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	noteId := f.seedNote(t, owner.Id, "doc")

	shared, err := f.shareService.ShareNote(ctx, owner.Id, noteId, &dto.ShareNoteRequest{
		UserIds:    []string{alice.Id.Hex()},
		Permission: "read",
	})
	require.NoError(t, err)
	grantId := shared.Granted[0].Id

	res, err := f.shareService.UpdatePermission(ctx, owner.Id, noteId, grantId, &dto.UpdateSharePermissionRequest{
		Permission: "edit",
	})
	require.NoError(t, err)
	assert.Equal(t, "edit", res.Permission)
}

func TestUpdateSharePermissionWrongNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	firstId := f.seedNote(t, owner.Id, "first")
	secondId := f.seedNote(t, owner.Id, "second")

	shared, err := f.shareService.ShareNote(ctx, owner.Id, firstId, &dto.ShareNoteRequest{
		UserIds: []string{alice.Id.Hex()},
	})
	require.NoError(t, err)

	// A grant addressed through a different note does not resolve.
	_, err = f.shareService.UpdatePermission(ctx, owner.Id, secondId, shared.Granted[0].Id, &dto.UpdateSharePermissionRequest{
		Permission: "edit",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRevokeShare(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	noteId := f.seedNote(t, owner.Id, "doc")

	_, err := f.shareService.ShareNote(ctx, owner.Id, noteId, &dto.ShareNoteRequest{
		UserIds: []string{alice.Id.Hex()},
	})
	require.NoError(t, err)

	require.NoError(t, f.shareService.Revoke(ctx, owner.Id, noteId, alice.Id.Hex()))

	// The second revoke has nothing to delete.
	err = f.shareService.Revoke(ctx, owner.Id, noteId, alice.Id.Hex())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListForNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser(t, "owner")
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	noteId := f.seedNote(t, owner.Id, "doc")

	_, err := f.shareService.ShareNote(ctx, owner.Id, noteId, &dto.ShareNoteRequest{
		UserIds: []string{alice.Id.Hex(), bob.Id.Hex()},
	})
	require.NoError(t, err)

	grants, err := f.shareService.ListForNote(ctx, owner.Id, noteId)
	require.NoError(t, err)
	assert.Len(t, grants, 2)

	_, err = f.shareService.ListForNote(ctx, alice.Id, noteId)
	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
}
