package contract

import (
	"context"

	"notesphere-be/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ShareRepository interface {
	// Insert fails with a Conflict kind when a grant already exists for the
	// (note, user) pair.
	Insert(ctx context.Context, grant *entity.ShareGrant) error
	Find(ctx context.Context, noteId, userId bson.ObjectID) (*entity.ShareGrant, error)
	FindById(ctx context.Context, id bson.ObjectID) (*entity.ShareGrant, error)
	FindAllByNote(ctx context.Context, noteId bson.ObjectID) ([]*entity.ShareGrant, error)
	FindAllByUser(ctx context.Context, userId bson.ObjectID) ([]*entity.ShareGrant, error)
	UpdatePermission(ctx context.Context, id bson.ObjectID, permission entity.SharePermission) error
	Delete(ctx context.Context, noteId, userId bson.ObjectID) (int64, error)
	DeleteAllByNote(ctx context.Context, noteId bson.ObjectID) (int64, error)
}
