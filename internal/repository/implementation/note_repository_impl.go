package implementation

import (
	"context"
	"errors"
	"time"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/repository/contract"
	"notesphere-be/pkg/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type NoteRepositoryImpl struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) contract.NoteRepository {
	return &NoteRepositoryImpl{coll: db.Collection(database.CollNotes)}
}

// buildNoteFilter translates a composed search into a single bson filter.
// Kept pure so the composition rules are testable without a store.
func buildNoteFilter(f contract.NoteSearchFilter) bson.M {
	filter := bson.M{"owner_id": f.OwnerId}
	if len(f.TagIds) > 0 {
		filter["tags"] = bson.M{"$in": f.TagIds}
	}
	if f.PinnedOnly {
		filter["is_pinned"] = true
	}
	if f.ScopeToIds {
		// An empty id set must match nothing, not everything.
		ids := f.NoteIds
		if ids == nil {
			ids = []bson.ObjectID{}
		}
		filter["_id"] = bson.M{"$in": ids}
	}
	if f.Text != "" {
		filter["$text"] = bson.M{"$search": f.Text}
	}
	return filter
}

// buildNoteSort returns the sort order for a composed search. Text queries
// sort purely by relevance score; pin-first ordering is intentionally not
// applied during text search.
func buildNoteSort(f contract.NoteSearchFilter) bson.D {
	if f.Text != "" {
		return bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
	}
	return bson.D{{Key: "is_pinned", Value: -1}, {Key: "updated_at", Value: -1}}
}

func (r *NoteRepositoryImpl) Insert(ctx context.Context, note *entity.Note) error {
	if note.Id.IsZero() {
		note.Id = bson.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, note)
	return err
}

func (r *NoteRepositoryImpl) FindById(ctx context.Context, id bson.ObjectID) (*entity.Note, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *NoteRepositoryImpl) FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Note, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner_id": ownerId})
}

func (r *NoteRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*entity.Note, error) {
	var note entity.Note
	if err := r.coll.FindOne(ctx, filter).Decode(&note); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepositoryImpl) Search(ctx context.Context, filter contract.NoteSearchFilter) ([]*entity.Note, error) {
	opts := options.Find().
		SetSort(buildNoteSort(filter)).
		SetSkip(filter.Skip).
		SetLimit(filter.Limit)
	if filter.Text != "" {
		opts = opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cursor, err := r.coll.Find(ctx, buildNoteFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	notes := make([]*entity.Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepositoryImpl) FindByIds(ctx context.Context, ids []bson.ObjectID, skip, limit int64) ([]*entity.Note, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	notes := make([]*entity.Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepositoryImpl) UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerId},
		bson.M{"$set": fields},
	)
	return err
}

func (r *NoteRepositoryImpl) PullTag(ctx context.Context, ownerId, tagId bson.ObjectID) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"owner_id": ownerId, "tags": tagId},
		bson.M{"$pull": bson.M{"tags": tagId}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *NoteRepositoryImpl) DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
