package implementation

import (
	"context"
	"errors"

	"notesphere-be/internal/entity"
	"notesphere-be/internal/pkg/apperr"
	"notesphere-be/internal/repository/contract"
	"notesphere-be/pkg/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MembershipRepositoryImpl struct {
	coll *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) contract.MembershipRepository {
	return &MembershipRepositoryImpl{coll: db.Collection(database.CollMemberships)}
}

func (r *MembershipRepositoryImpl) Insert(ctx context.Context, membership *entity.CollectionMembership) error {
	if membership.Id.IsZero() {
		membership.Id = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, membership); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("note already in collection")
		}
		return err
	}
	return nil
}

func (r *MembershipRepositoryImpl) Find(ctx context.Context, collectionId, noteId bson.ObjectID) (*entity.CollectionMembership, error) {
	var membership entity.CollectionMembership
	err := r.coll.FindOne(ctx, bson.M{"collection_id": collectionId, "note_id": noteId}).Decode(&membership)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepositoryImpl) FindAllByCollection(ctx context.Context, collectionId bson.ObjectID) ([]*entity.CollectionMembership, error) {
	return r.findAll(ctx, bson.M{"collection_id": collectionId})
}

func (r *MembershipRepositoryImpl) FindAllByNote(ctx context.Context, noteId bson.ObjectID) ([]*entity.CollectionMembership, error) {
	return r.findAll(ctx, bson.M{"note_id": noteId})
}

func (r *MembershipRepositoryImpl) findAll(ctx context.Context, filter bson.M) ([]*entity.CollectionMembership, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	memberships := make([]*entity.CollectionMembership, 0)
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *MembershipRepositoryImpl) Delete(ctx context.Context, collectionId, noteId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"collection_id": collectionId, "note_id": noteId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MembershipRepositoryImpl) DeleteAllByCollection(ctx context.Context, collectionId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"collection_id": collectionId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MembershipRepositoryImpl) DeleteAllByNote(ctx context.Context, noteId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"note_id": noteId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
