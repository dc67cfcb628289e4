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

type UserRepositoryImpl struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) contract.UserRepository {
	return &UserRepositoryImpl{coll: db.Collection(database.CollUsers)}
}

func (r *UserRepositoryImpl) Insert(ctx context.Context, user *entity.User) error {
	if user.Id.IsZero() {
		user.Id = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("email or username already registered")
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindById(ctx context.Context, id bson.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateFields(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}
