package implementation

import (
	"context"
	"errors"
	"time"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/repository/contract"
	"notesphere-be/pkg/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type TagRepositoryImpl struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) contract.TagRepository {
	return &TagRepositoryImpl{coll: db.Collection(database.CollTags)}
}

func (r *TagRepositoryImpl) Insert(ctx context.Context, tag *entity.Tag) error {
	if tag.Id.IsZero() {
		tag.Id = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, tag); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("tag already exists")
		}
		return err
	}
	return nil
}

func (r *TagRepositoryImpl) FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Tag, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner_id": ownerId})
}

func (r *TagRepositoryImpl) FindByName(ctx context.Context, ownerId bson.ObjectID, name string) (*entity.Tag, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerId, "name": name})
}

func (r *TagRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.coll.FindOne(ctx, filter).Decode(&tag); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindAllByOwner(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*entity.Tag, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerId}, opts)
	if err != nil {
		return nil, err
	}
	tags := make([]*entity.Tag, 0)
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepositoryImpl) UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerId},
		bson.M{"$set": fields},
	)
	return err
}

func (r *TagRepositoryImpl) IncNoteCounts(ctx context.Context, ids []bson.ObjectID, delta int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$inc": bson.M{"note_count": delta}},
	)
	return err
}

func (r *TagRepositoryImpl) DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
