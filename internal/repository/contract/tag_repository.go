package contract

import (
	"context"

	"notesphere-be/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TagRepository interface {
	Insert(ctx context.Context, tag *entity.Tag) error
	FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Tag, error)
	FindByName(ctx context.Context, ownerId bson.ObjectID, name string) (*entity.Tag, error)
	FindAllByOwner(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*entity.Tag, error)
	UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error
	// IncNoteCounts applies an atomic $inc of delta to note_count on every
	// listed tag. Never implemented as read-modify-write.
	IncNoteCounts(ctx context.Context, ids []bson.ObjectID, delta int) error
	DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error)
}
