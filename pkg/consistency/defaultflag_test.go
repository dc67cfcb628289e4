package consistency

import (
	"context"
	"testing"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestClaimDefaultDemotesCurrentHolder(t *testing.T) {
	ctx := context.Background()
	collections := memory.NewCollectionRepository()
	flag := NewDefaultFlag(collections)
	owner := bson.NewObjectID()

	inbox := &entity.Collection{OwnerId: owner, Name: "Inbox", IsDefault: true}
	archive := &entity.Collection{OwnerId: owner, Name: "Archive"}
	require.NoError(t, collections.Insert(ctx, inbox))
	require.NoError(t, collections.Insert(ctx, archive))

	// Archive becomes the default: demote first, then set on the new holder.
	require.NoError(t, flag.ClaimDefault(ctx, owner))
	require.NoError(t, collections.UpdateFields(ctx, archive.Id, owner, map[string]interface{}{
		"is_default": true,
	}))

	all, err := collections.FindAllByOwner(ctx, owner, 0, 0)
	require.NoError(t, err)

	var defaults int
	for _, c := range all {
		if c.IsDefault {
			defaults++
			assert.Equal(t, "Archive", c.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestClaimDefaultScopedToOwner(t *testing.T) {
	ctx := context.Background()
	collections := memory.NewCollectionRepository()
	flag := NewDefaultFlag(collections)
	owner := bson.NewObjectID()
	neighbor := bson.NewObjectID()

	theirs := &entity.Collection{OwnerId: neighbor, Name: "Inbox", IsDefault: true}
	require.NoError(t, collections.Insert(ctx, theirs))

	require.NoError(t, flag.ClaimDefault(ctx, owner))

	still, err := collections.FindByIdForOwner(ctx, theirs.Id, neighbor)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.True(t, still.IsDefault)
}
