package contract

import (
	"context"

	"notesphere-be/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MembershipRepository interface {
	Insert(ctx context.Context, membership *entity.CollectionMembership) error
	Find(ctx context.Context, collectionId, noteId bson.ObjectID) (*entity.CollectionMembership, error)
	FindAllByCollection(ctx context.Context, collectionId bson.ObjectID) ([]*entity.CollectionMembership, error)
	FindAllByNote(ctx context.Context, noteId bson.ObjectID) ([]*entity.CollectionMembership, error)
	Delete(ctx context.Context, collectionId, noteId bson.ObjectID) (int64, error)
	DeleteAllByCollection(ctx context.Context, collectionId bson.ObjectID) (int64, error)
	DeleteAllByNote(ctx context.Context, noteId bson.ObjectID) (int64, error)
}
