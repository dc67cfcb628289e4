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

type CollectionRepositoryImpl struct {
	coll *mongo.Collection
}

func NewCollectionRepository(db *mongo.Database) contract.CollectionRepository {
	return &CollectionRepositoryImpl{coll: db.Collection(database.CollCollections)}
}

func (r *CollectionRepositoryImpl) Insert(ctx context.Context, collection *entity.Collection) error {
	if collection.Id.IsZero() {
		collection.Id = bson.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, collection)
	return err
}

func (r *CollectionRepositoryImpl) FindByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (*entity.Collection, error) {
	var collection entity.Collection
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerId}).Decode(&collection)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepositoryImpl) FindAllByOwner(ctx context.Context, ownerId bson.ObjectID, skip, limit int64) ([]*entity.Collection, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "is_default", Value: -1}, {Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerId}, opts)
	if err != nil {
		return nil, err
	}
	collections := make([]*entity.Collection, 0)
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *CollectionRepositoryImpl) UpdateFields(ctx context.Context, id, ownerId bson.ObjectID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerId},
		bson.M{"$set": fields},
	)
	return err
}

func (r *CollectionRepositoryImpl) IncNoteCount(ctx context.Context, id bson.ObjectID, delta int) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"note_count": delta}},
	)
	return err
}

func (r *CollectionRepositoryImpl) DemoteDefaults(ctx context.Context, ownerId bson.ObjectID) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"owner_id": ownerId, "is_default": true},
		bson.M{"$set": bson.M{"is_default": false}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *CollectionRepositoryImpl) DeleteByIdForOwner(ctx context.Context, id, ownerId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
