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
)

type ShareRepositoryImpl struct {
	coll *mongo.Collection
}

func NewShareRepository(db *mongo.Database) contract.ShareRepository {
	return &ShareRepositoryImpl{coll: db.Collection(database.CollShares)}
}

func (r *ShareRepositoryImpl) Insert(ctx context.Context, grant *entity.ShareGrant) error {
	if grant.Id.IsZero() {
		grant.Id = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, grant); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("note already shared with user")
		}
		return err
	}
	return nil
}

func (r *ShareRepositoryImpl) Find(ctx context.Context, noteId, userId bson.ObjectID) (*entity.ShareGrant, error) {
	return r.findOne(ctx, bson.M{"note_id": noteId, "user_id": userId})
}

func (r *ShareRepositoryImpl) FindById(ctx context.Context, id bson.ObjectID) (*entity.ShareGrant, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ShareRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*entity.ShareGrant, error) {
	var grant entity.ShareGrant
	if err := r.coll.FindOne(ctx, filter).Decode(&grant); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (r *ShareRepositoryImpl) FindAllByNote(ctx context.Context, noteId bson.ObjectID) ([]*entity.ShareGrant, error) {
	return r.findAll(ctx, bson.M{"note_id": noteId})
}

func (r *ShareRepositoryImpl) FindAllByUser(ctx context.Context, userId bson.ObjectID) ([]*entity.ShareGrant, error) {
	return r.findAll(ctx, bson.M{"user_id": userId})
}

func (r *ShareRepositoryImpl) findAll(ctx context.Context, filter bson.M) ([]*entity.ShareGrant, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	grants := make([]*entity.ShareGrant, 0)
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *ShareRepositoryImpl) UpdatePermission(ctx context.Context, id bson.ObjectID, permission entity.SharePermission) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"permission": permission, "updated_at": time.Now().UTC()}},
	)
	return err
}

func (r *ShareRepositoryImpl) Delete(ctx context.Context, noteId, userId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"note_id": noteId, "user_id": userId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ShareRepositoryImpl) DeleteAllByNote(ctx context.Context, noteId bson.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"note_id": noteId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
