package contract

import (
	"context"

	"notesphere-be/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CollectionRepository interface {
	Insert(ctx context.Context, collection *entity.Collection) error
	FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Collection, error)
	// FindAllByOwner sorts default-first, then by name.
	FindAllByOwner(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*entity.Collection, error)
	UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error
	// IncNoteCount applies an atomic $inc of delta to note_count.
	IncNoteCount(ctx context.Context, id bson.ObjectID, delta int) error
	// DemoteDefaults clears is_default on every default collection of the
	// owner, returning how many were demoted.
	DemoteDefaults(ctx context.Context, ownerId bson.ObjectID) (int64, error)
	DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error)
}
