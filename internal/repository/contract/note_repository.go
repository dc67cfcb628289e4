package contract

import (
	"context"

	"notesphere-be/internal/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NoteSearchFilter describes one composed read over the notes collection.
// OwnerId is the mandatory scope; everything else narrows it.
type NoteSearchFilter struct {
	OwnerId    bson.ObjectID
	TagIds     []bson.ObjectID // match notes whose tag set intersects
	PinnedOnly bool
	ScopeToIds bool            // restrict to NoteIds (collection scope); an empty NoteIds then matches nothing
	NoteIds    []bson.ObjectID
	Text       string // free-text query; switches sort to relevance score
	Skip       int64
	Limit      int64
}

type NoteRepository interface {
	Insert(ctx context.Context, note *entity.Note) error
	FindById(ctx context.Context, id bson.ObjectID) (*entity.Note, error)
	// FindByIdForOwner folds the ownership check into the lookup filter:
	// a note owned by someone else is indistinguishable from a missing one.
	FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Note, error)
	Search(ctx context.Context, filter NoteSearchFilter) ([]*entity.Note, error)
	// FindByIds returns the given notes sorted by updated_at descending.
	FindByIds(ctx context.Context, ids []bson.ObjectID, skip, limit int64) ([]*entity.Note, error)
	UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error
	// PullTag removes the tag reference from every note of the owner that
	// carries it, returning the number of notes touched.
	PullTag(ctx context.Context, ownerId, tagId bson.ObjectID) (int64, error)
	DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error)
}
